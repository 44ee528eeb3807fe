package conversation

import "fmt"

// Outcome distinguishes a confirmed server-side submission from one that
// only exists locally because the submit request failed.
type Outcome string

const (
	// OutcomeSubmitted means the server accepted and persisted the request.
	OutcomeSubmitted Outcome = "submitted"

	// OutcomeSubmittedWithSyncPending means the submit request failed and a
	// reference number was generated locally. The user still sees success,
	// with a disclaimer that the record has not reached the store yet.
	OutcomeSubmittedWithSyncPending Outcome = "submitted_sync_pending"
)

// SubmissionResult is what the front end reports back after attempting the
// submit call.
type SubmissionResult struct {
	Outcome         Outcome
	ReferenceNumber string
}

const nextStepsBlock = "**What happens next?**\n" +
	"✅ Your request has been added to our intake queue\n" +
	"📧 You'll receive a confirmation email shortly\n" +
	"👥 The SSO UX team will review your submission\n" +
	"💡 We'll contact you within 48 hours with an initial concept"

// Complete finishes a conversation that was left in the submitting step.
// Both outcomes render as success; the sync-pending variant adds a
// disclaimer.
func Complete(state State, result SubmissionResult) (State, Reply) {
	state.Step = StepComplete

	if result.Outcome == OutcomeSubmittedWithSyncPending {
		return state, Reply{
			Text: fmt.Sprintf("🎉 **Your intake has been submitted!**\n\n"+
				"**Reference Number:** %s\n\n"+
				"⚠️ *Note: There was an issue connecting to the database. Your request has been saved locally and will be synced when the connection is restored.*\n\n"+
				"%s\n\n---\n\nThank you for using the SSO UX intake portal! 🚀",
				result.ReferenceNumber, nextStepsBlock),
		}
	}

	return state, Reply{
		Text: fmt.Sprintf("🎉 **Your intake has been submitted successfully!**\n\n"+
			"**Reference Number:** %s\n\n"+
			"%s\n\n---\n\n"+
			"Need to make changes? Reply to the confirmation email with your reference number.\n\n"+
			"Have questions? Contact us at sso-ux-intake@amazon.com\n\n"+
			"Thank you for using the SSO UX intake portal! 🚀",
			result.ReferenceNumber, nextStepsBlock),
	}
}
