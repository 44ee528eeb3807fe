package conversation_test

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"compass.app/intake/internal/conversation"
)

const validProblem = "Customers cannot correlate security findings across accounts without exporting data to spreadsheets manually."

// walkToReview drives a fresh conversation through the happy path up to the
// review step, using the given feature type and service option values.
func walkToReview(featureType, serviceValue string) conversation.State {
	state := conversation.NewState()

	state, _, _ = conversation.Advance(state, conversation.OptionInput("yes"))
	state, _, _ = conversation.Advance(state, conversation.TextInput(validProblem))
	state, _, _ = conversation.Advance(state, conversation.OptionInput("yes"))
	state, _, _ = conversation.Advance(state, conversation.OptionInput(featureType))
	if featureType == "enhancement" {
		state, _, _ = conversation.Advance(state, conversation.TextInput("Finding detail pane"))
	}
	state, _, _ = conversation.Advance(state, conversation.OptionInput(serviceValue))
	if serviceValue == "other" {
		state, _, _ = conversation.Advance(state, conversation.TextInput("GuardDuty"))
	}
	state, _, _ = conversation.Advance(state, conversation.OptionInput("standard"))
	state, _, _ = conversation.Advance(state, conversation.OptionInput("no"))
	state, _, _ = conversation.Advance(state, conversation.TextInput("Jane Doe"))
	state, _, _ = conversation.Advance(state, conversation.TextInput(""))
	return state
}

var _ = Describe("Advance", func() {
	Describe("welcome", func() {
		It("moves to the problem prompt on any input", func() {
			state, reply, err := conversation.Advance(conversation.NewState(), conversation.OptionInput("sure"))

			Expect(err).NotTo(HaveOccurred())
			Expect(state.Step).To(Equal(conversation.StepProblem))
			Expect(reply.Text).To(ContainSubstring("What customer problem are you trying to solve?"))
			Expect(reply.Options).To(BeEmpty())
		})
	})

	Describe("problem", func() {
		It("re-prompts when the trimmed input is under 50 characters", func() {
			state := conversation.State{Step: conversation.StepProblem}
			padded := "  too short  " + strings.Repeat(" ", 60)

			next, reply, err := conversation.Advance(state, conversation.TextInput(padded))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepProblem))
			Expect(next.Answers.Problem).To(BeEmpty())
			Expect(reply.Text).To(ContainSubstring("minimum 50 characters"))
		})

		It("accepts exactly 50 characters after trimming", func() {
			input := "  " + strings.Repeat("x", 50) + "  "
			state := conversation.State{Step: conversation.StepProblem}

			next, _, err := conversation.Advance(state, conversation.TextInput(input))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepProblemConfirm))
			Expect(next.Answers.Problem).To(Equal(strings.Repeat("x", 50)))
		})

		It("echoes the full problem when it is 150 characters or fewer", func() {
			state := conversation.State{Step: conversation.StepProblem}

			_, reply, err := conversation.Advance(state, conversation.TextInput(validProblem))

			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Text).To(ContainSubstring(validProblem))
			Expect(reply.Text).NotTo(ContainSubstring(validProblem + "..."))
		})

		It("counts characters rather than bytes for the minimum length", func() {
			// 50 two-byte runes: under 50 bytes would reject, 50 runes pass.
			input := strings.Repeat("ü", 50)
			state := conversation.State{Step: conversation.StepProblem}

			next, _, err := conversation.Advance(state, conversation.TextInput(input))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepProblemConfirm))
		})

		It("truncates a multi-byte echo without splitting a rune", func() {
			long := strings.Repeat("é", 200)
			state := conversation.State{Step: conversation.StepProblem}

			_, reply, err := conversation.Advance(state, conversation.TextInput(long))

			Expect(err).NotTo(HaveOccurred())
			Expect(utf8.ValidString(reply.Text)).To(BeTrue())
			Expect(reply.Text).To(ContainSubstring(strings.Repeat("é", 150) + "..."))
		})

		It("truncates the echo to 150 characters with an ellipsis", func() {
			long := strings.Repeat("a", 200)
			state := conversation.State{Step: conversation.StepProblem}

			next, reply, err := conversation.Advance(state, conversation.TextInput(long))

			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Text).To(ContainSubstring(strings.Repeat("a", 150) + "..."))
			// The stored answer keeps the full text.
			Expect(next.Answers.Problem).To(Equal(long))
		})
	})

	Describe("problem_confirm", func() {
		It("returns to the problem prompt on no", func() {
			state := conversation.State{Step: conversation.StepProblemConfirm}

			next, reply, err := conversation.Advance(state, conversation.OptionInput("no"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepProblem))
			Expect(reply.Text).To(ContainSubstring("Let's try again"))
		})

		It("offers feature type options on yes", func() {
			state := conversation.State{Step: conversation.StepProblemConfirm}

			next, reply, err := conversation.Advance(state, conversation.OptionInput("yes"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepFeatureType))
			Expect(reply.Options).To(HaveLen(3))
		})
	})

	Describe("feature_type", func() {
		It("routes enhancement to the existing feature question", func() {
			state := conversation.State{Step: conversation.StepFeatureType}

			next, reply, err := conversation.Advance(state, conversation.OptionInput("enhancement"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepExistingFeature))
			Expect(next.Answers.FeatureType).To(Equal("enhancement"))
			Expect(reply.Text).To(ContainSubstring("Which existing feature"))
		})

		It("re-prompts when the existing feature answer is blank", func() {
			state := conversation.State{Step: conversation.StepExistingFeature}

			next, reply, err := conversation.Advance(state, conversation.TextInput("   "))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepExistingFeature))
			Expect(next.Answers.ExistingFeature).To(BeEmpty())
			Expect(reply.Text).To(ContainSubstring("Which existing feature"))
		})

		It("routes new straight to the service picker", func() {
			state := conversation.State{Step: conversation.StepFeatureType}

			next, reply, err := conversation.Advance(state, conversation.OptionInput("new"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepService))
			Expect(reply.Options).To(HaveLen(len(conversation.Services)))
		})

		It("routes unsure straight to the service picker", func() {
			state := conversation.State{Step: conversation.StepFeatureType}

			next, _, err := conversation.Advance(state, conversation.OptionInput("unsure"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepService))
		})
	})

	Describe("service", func() {
		It("resolves catalog values to their display names", func() {
			state := conversation.State{Step: conversation.StepService}

			next, _, err := conversation.Advance(state, conversation.OptionInput("security_hub"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepTimeline))
			Expect(next.Answers.Service).To(Equal("Security Hub"))
		})

		It("routes other to the free text service prompt", func() {
			state := conversation.State{Step: conversation.StepService}

			next, reply, err := conversation.Advance(state, conversation.OptionInput("other"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepOtherService))
			Expect(reply.Text).To(ContainSubstring("specify the service name"))
		})

		It("re-prompts when the typed service name is blank", func() {
			state := conversation.State{Step: conversation.StepOtherService}

			next, reply, err := conversation.Advance(state, conversation.TextInput(""))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepOtherService))
			Expect(next.Answers.Service).To(BeEmpty())
			Expect(reply.Text).To(ContainSubstring("specify the service name"))
		})

		It("stores the typed name from other_service and continues to timeline", func() {
			state := conversation.State{Step: conversation.StepOtherService}

			next, _, err := conversation.Advance(state, conversation.TextInput("GuardDuty"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepTimeline))
			Expect(next.Answers.Service).To(Equal("GuardDuty"))
			Expect(next.Answers.OtherService).To(Equal("GuardDuty"))
		})
	})

	Describe("timeline", func() {
		It("stores the display label for a known value", func() {
			state := conversation.State{Step: conversation.StepTimeline}

			next, reply, err := conversation.Advance(state, conversation.OptionInput("urgent"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepResearch))
			Expect(next.Answers.Timeline).To(ContainSubstring("Urgent"))
			Expect(reply.Options).To(HaveLen(3))
		})
	})

	Describe("research", func() {
		It("asks for links on yes", func() {
			state := conversation.State{Step: conversation.StepResearch}

			next, _, err := conversation.Advance(state, conversation.OptionInput("yes"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepResearchLinks))
		})

		It("re-prompts when the research links are blank", func() {
			state := conversation.State{Step: conversation.StepResearchLinks}

			next, reply, err := conversation.Advance(state, conversation.TextInput("  "))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepResearchLinks))
			Expect(reply.Text).To(ContainSubstring("provide links"))
		})

		It("skips to stakeholder on no", func() {
			state := conversation.State{Step: conversation.StepResearch}

			next, _, err := conversation.Advance(state, conversation.OptionInput("no"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepStakeholder))
		})

		It("skips to stakeholder on in_progress", func() {
			state := conversation.State{Step: conversation.StepResearch}

			next, _, err := conversation.Advance(state, conversation.OptionInput("in_progress"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepStakeholder))
		})
	})

	Describe("stakeholder", func() {
		It("substitutes the sentinel when skipped", func() {
			state := conversation.State{Step: conversation.StepStakeholder}

			next, _, err := conversation.Advance(state, conversation.TextInput("   "))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Answers.Stakeholder).To(Equal("Not specified"))
			Expect(next.Step).To(Equal(conversation.StepConstraints))
		})
	})

	Describe("review_confirm", func() {
		It("renders a summary containing every collected answer", func() {
			state := walkToReview("enhancement", "cloudwatch")

			Expect(state.Step).To(Equal(conversation.StepReviewConfirm))

			// Replay the last transition to inspect the summary reply.
			prev := state
			prev.Step = conversation.StepConstraints
			_, reply, err := conversation.Advance(prev, conversation.TextInput("Must ship with console redesign"))

			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Text).To(ContainSubstring(validProblem))
			Expect(reply.Text).To(ContainSubstring("Enhancing: Finding detail pane"))
			Expect(reply.Text).To(ContainSubstring("CloudWatch"))
			Expect(reply.Text).To(ContainSubstring("Jane Doe"))
			Expect(reply.Text).To(ContainSubstring("Must ship with console redesign"))
		})

		It("moves to submitting on submit", func() {
			state := walkToReview("new", "cloudtrail")

			next, _, err := conversation.Advance(state, conversation.OptionInput("submit"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepSubmitting))
		})

		It("resets the draft and restarts at problem on edit", func() {
			state := walkToReview("new", "cloudtrail")

			next, reply, err := conversation.Advance(state, conversation.OptionInput("edit"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepProblem))
			Expect(next.Answers).To(Equal(conversation.Answers{}))
			Expect(reply.Text).To(ContainSubstring("start over"))
		})

		It("terminates on cancel", func() {
			state := walkToReview("new", "cloudtrail")

			next, reply, err := conversation.Advance(state, conversation.OptionInput("cancel"))

			Expect(err).NotTo(HaveOccurred())
			Expect(next.Step).To(Equal(conversation.StepCancelled))
			Expect(next.Step.Terminal()).To(BeTrue())
			Expect(reply.Text).To(ContainSubstring("cancelled"))
		})
	})

	Describe("terminal steps", func() {
		It("rejects input after completion", func() {
			state := conversation.State{Step: conversation.StepComplete}

			_, _, err := conversation.Advance(state, conversation.TextInput("hello?"))

			Expect(err).To(MatchError(conversation.ErrConversationEnded))
		})

		It("rejects input after cancellation", func() {
			state := conversation.State{Step: conversation.StepCancelled}

			_, _, err := conversation.Advance(state, conversation.OptionInput("yes"))

			Expect(err).To(MatchError(conversation.ErrConversationEnded))
		})
	})

	Describe("purity", func() {
		It("never mutates the input state", func() {
			state := conversation.State{Step: conversation.StepTimeline}
			before := state

			_, _, err := conversation.Advance(state, conversation.OptionInput("high"))

			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(before))
		})

		It("produces the same result for the same input", func() {
			state := conversation.State{Step: conversation.StepResearch}

			a, replyA, errA := conversation.Advance(state, conversation.OptionInput("no"))
			b, replyB, errB := conversation.Advance(state, conversation.OptionInput("no"))

			Expect(errA).NotTo(HaveOccurred())
			Expect(errB).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
			Expect(replyA).To(Equal(replyB))
		})
	})

	Describe("state serialization", func() {
		It("round-trips through JSON unchanged", func() {
			state := walkToReview("enhancement", "other")

			raw, err := json.Marshal(state)
			Expect(err).NotTo(HaveOccurred())

			var restored conversation.State
			Expect(json.Unmarshal(raw, &restored)).To(Succeed())
			Expect(restored).To(Equal(state))

			// The restored state advances exactly like the original.
			nextA, _, _ := conversation.Advance(state, conversation.OptionInput("submit"))
			nextB, _, _ := conversation.Advance(restored, conversation.OptionInput("submit"))
			Expect(nextA).To(Equal(nextB))
		})
	})
})

var _ = Describe("Complete", func() {
	It("renders the confirmed success message", func() {
		state := conversation.State{Step: conversation.StepSubmitting}

		next, reply := conversation.Complete(state, conversation.SubmissionResult{
			Outcome:         conversation.OutcomeSubmitted,
			ReferenceNumber: "SSO-UX-2026-09-01-042",
		})

		Expect(next.Step).To(Equal(conversation.StepComplete))
		Expect(reply.Text).To(ContainSubstring("SSO-UX-2026-09-01-042"))
		Expect(reply.Text).To(ContainSubstring("submitted successfully"))
		Expect(reply.Text).NotTo(ContainSubstring("saved locally"))
	})

	It("renders the sync pending variant with a disclaimer", func() {
		state := conversation.State{Step: conversation.StepSubmitting}

		next, reply := conversation.Complete(state, conversation.SubmissionResult{
			Outcome:         conversation.OutcomeSubmittedWithSyncPending,
			ReferenceNumber: "SSO-UX-2026-09-01-007",
		})

		Expect(next.Step).To(Equal(conversation.StepComplete))
		Expect(reply.Text).To(ContainSubstring("SSO-UX-2026-09-01-007"))
		Expect(reply.Text).To(ContainSubstring("saved locally"))
	})
})
