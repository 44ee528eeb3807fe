package conversation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinProblemLength is the minimum accepted problem statement length,
	// counted after trimming surrounding whitespace.
	MinProblemLength = 50

	// echoLimit caps how much of the problem statement is echoed back at
	// the confirmation step.
	echoLimit = 150
)

// ErrConversationEnded is returned by Advance once the conversation has
// reached a terminal step.
var ErrConversationEnded = errors.New("conversation has ended")

// ErrAwaitingSubmission is returned by Advance while the submit request is
// in flight. The front end finishes the conversation through Complete.
var ErrAwaitingSubmission = errors.New("conversation is awaiting submission")

// Input is one user turn: either a predefined option selection or free text.
type Input struct {
	option string
	text   string
}

// OptionInput wraps a selected option value.
func OptionInput(value string) Input {
	return Input{option: value}
}

// TextInput wraps typed free text.
func TextInput(text string) Input {
	return Input{text: text}
}

func (in Input) value() string {
	if in.option != "" {
		return in.option
	}
	return strings.TrimSpace(in.text)
}

// Advance applies one user input to a conversation state and returns the
// next state plus the reply to render. It is a pure function: the input
// state is never mutated, and equal inputs always produce equal outputs.
func Advance(state State, input Input) (State, Reply, error) {
	if state.Step.Terminal() {
		return state, Reply{}, ErrConversationEnded
	}

	switch state.Step {
	case StepWelcome:
		state.Step = StepProblem
		return state, Reply{Text: problemPrompt}, nil

	case StepProblem:
		problem := strings.TrimSpace(input.text)
		if utf8.RuneCountInString(problem) < MinProblemLength {
			return state, Reply{Text: problemTooShortPrompt}, nil
		}
		state.Answers.Problem = problem
		state.Step = StepProblemConfirm
		echo := problem
		if runes := []rune(echo); len(runes) > echoLimit {
			echo = string(runes[:echoLimit]) + "..."
		}
		return state, Reply{
			Text: fmt.Sprintf("Thanks for sharing that context. Let me make sure I understand...\n\n*\"%s\"*\n\nDoes this accurately capture the problem?", echo),
			Options: []Option{
				{Label: "Yes, that's correct", Value: "yes"},
				{Label: "No, let me clarify", Value: "no"},
			},
		}, nil

	case StepProblemConfirm:
		if input.value() != "yes" {
			state.Step = StepProblem
			return state, Reply{Text: problemRetryPrompt}, nil
		}
		state.Step = StepFeatureType
		return state, Reply{
			Text: featureTypePrompt,
			Options: []Option{
				{Label: "🆕 New Feature - Building something from scratch", Value: "new"},
				{Label: "✨ Enhancement - Improving an existing feature", Value: "enhancement"},
				{Label: "🤔 Not sure - Need help determining this", Value: "unsure"},
			},
		}, nil

	case StepFeatureType:
		state.Answers.FeatureType = input.value()
		if state.Answers.FeatureType == "enhancement" {
			state.Step = StepExistingFeature
			return state, Reply{Text: existingFeaturePrompt}, nil
		}
		state.Step = StepService
		return state, Reply{Text: servicePrompt, Options: serviceOptions()}, nil

	case StepExistingFeature:
		name := input.value()
		if name == "" {
			return state, Reply{Text: existingFeaturePrompt}, nil
		}
		state.Answers.ExistingFeature = name
		state.Step = StepService
		return state, Reply{Text: servicePrompt, Options: serviceOptions()}, nil

	case StepService:
		value := input.value()
		state.Answers.Service = ServiceByValue(value)
		if value == "other" {
			state.Step = StepOtherService
			return state, Reply{Text: otherServicePrompt}, nil
		}
		state.Step = StepTimeline
		return state, Reply{Text: timelinePrompt, Options: timelineOptions()}, nil

	case StepOtherService:
		name := input.value()
		if name == "" {
			return state, Reply{Text: otherServicePrompt}, nil
		}
		state.Answers.Service = name
		state.Answers.OtherService = name
		state.Step = StepTimeline
		return state, Reply{Text: timelinePrompt, Options: timelineOptions()}, nil

	case StepTimeline:
		value := input.value()
		if label, ok := timelineLabels[value]; ok {
			state.Answers.Timeline = label
		} else {
			state.Answers.Timeline = value
		}
		state.Step = StepResearch
		return state, Reply{
			Text: researchPrompt,
			Options: []Option{
				{Label: "Yes (I can provide links)", Value: "yes"},
				{Label: "No", Value: "no"},
				{Label: "In progress", Value: "in_progress"},
			},
		}, nil

	case StepResearch:
		state.Answers.HasResearch = input.value()
		if state.Answers.HasResearch == "yes" {
			state.Step = StepResearchLinks
			return state, Reply{Text: researchLinksPrompt}, nil
		}
		state.Step = StepStakeholder
		return state, Reply{Text: stakeholderPrompt}, nil

	case StepResearchLinks:
		links := input.value()
		if links == "" {
			return state, Reply{Text: researchLinksPrompt}, nil
		}
		state.Answers.ResearchLinks = links
		state.Step = StepStakeholder
		return state, Reply{Text: stakeholderPrompt}, nil

	case StepStakeholder:
		stakeholder := input.value()
		if stakeholder == "" {
			stakeholder = "Not specified"
		}
		state.Answers.Stakeholder = stakeholder
		state.Step = StepConstraints
		return state, Reply{Text: constraintsPrompt}, nil

	case StepConstraints:
		state.Answers.Constraints = input.value()
		state.Step = StepReviewConfirm
		return state, Reply{
			Text: reviewSummary(state.Answers),
			Options: []Option{
				{Label: "✅ Yes, submit this request", Value: "submit"},
				{Label: "✏️ Edit my responses", Value: "edit"},
				{Label: "❌ Cancel", Value: "cancel"},
			},
		}, nil

	case StepReviewConfirm:
		switch input.value() {
		case "submit":
			state.Step = StepSubmitting
			return state, Reply{Text: "Submitting your request..."}, nil
		case "edit":
			// Editing restarts the questionnaire with a clean draft.
			state.Answers = Answers{}
			state.Step = StepProblem
			return state, Reply{Text: editRestartPrompt}, nil
		default:
			state.Step = StepCancelled
			return state, Reply{Text: cancelledPrompt}, nil
		}

	case StepSubmitting:
		return state, Reply{}, ErrAwaitingSubmission

	default:
		return state, Reply{}, fmt.Errorf("unknown step %q", state.Step)
	}
}

func timelineOptions() []Option {
	return []Option{
		{Label: timelineLabels["urgent"], Value: "urgent"},
		{Label: timelineLabels["high"], Value: "high"},
		{Label: timelineLabels["standard"], Value: "standard"},
		{Label: timelineLabels["future"], Value: "future"},
	}
}

func reviewSummary(a Answers) string {
	var b strings.Builder

	b.WriteString("Perfect! Let me summarize your request:\n\n**📋 Intake Summary**\n\n")
	b.WriteString("**Customer Problem:**\n" + a.Problem + "\n\n")

	featureTypeLabel := "🤔 To be determined"
	switch a.FeatureType {
	case "new":
		featureTypeLabel = "🆕 New Feature"
	case "enhancement":
		featureTypeLabel = "✨ Enhancement"
	}
	b.WriteString("**Feature Type:** " + featureTypeLabel)
	if a.ExistingFeature != "" {
		b.WriteString("\nEnhancing: " + a.ExistingFeature)
	}
	b.WriteString("\n\n")

	b.WriteString("**Service:** " + a.Service + "\n\n")
	b.WriteString("**Timeline:** " + a.Timeline + "\n\n")

	stakeholder := a.Stakeholder
	if stakeholder == "" {
		stakeholder = "Not specified"
	}
	b.WriteString("**Stakeholder:** " + stakeholder + "\n\n")

	if a.Constraints != "" {
		b.WriteString("**Additional Context:** " + a.Constraints + "\n\n")
	}

	b.WriteString("Does everything look correct?")
	return b.String()
}
