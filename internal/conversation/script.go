package conversation

import "strings"

// Option is a predefined choice presented alongside a prompt.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Reply is what the conversation says next. Options is nil when the prompt
// expects free text.
type Reply struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}

// Services is the fixed catalog offered at the service step. "Other" routes
// to a free-text follow-up.
var Services = []string{
	"Amazon OpenSearch Service",
	"OpenSearch Project",
	"CloudWatch",
	"CloudTrail",
	"Security Hub",
	"Security Lake",
	"Other",
}

// ServiceValue converts a catalog entry to its option value
// ("Security Hub" -> "security_hub").
func ServiceValue(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// ServiceByValue resolves an option value back to the catalog name. Unknown
// values are returned as-is, matching how free-typed service names flow
// through the other_service path.
func ServiceByValue(value string) string {
	for _, s := range Services {
		if ServiceValue(s) == value {
			return s
		}
	}
	return value
}

func serviceOptions() []Option {
	opts := make([]Option, 0, len(Services))
	for _, s := range Services {
		opts = append(opts, Option{Label: s, Value: ServiceValue(s)})
	}
	return opts
}

var timelineLabels = map[string]string{
	"urgent":   "🔴 Urgent (next sprint)",
	"high":     "🟡 High priority (next quarter)",
	"standard": "🟢 Standard (next 6 months)",
	"future":   "⚪ Future consideration",
}

const welcomePrompt = "Hi! 👋 Welcome to the Security Search and Observability UX intake portal. I'm here to help you submit a UX request for your project.\n\n" +
	"I'll ask you a few questions about the customer problem you're trying to solve, and our UX team will get back to you within 48 hours with a concept.\n\n" +
	"Ready to get started?"

const problemPrompt = "Great! Let's start with the most important part.\n\n" +
	"**What customer problem are you trying to solve?**\n\n" +
	"Please describe the problem in detail. Include:\n" +
	"• What customers are trying to accomplish\n" +
	"• Current pain points or friction\n" +
	"• Expected outcome"

const problemRetryPrompt = "No problem! Let's try again. Please describe the customer problem you're trying to solve:"

const problemTooShortPrompt = "Please provide more detail (minimum 50 characters). What specific pain points are customers experiencing?"

const featureTypePrompt = "Now, help me understand the scope of this request.\n\n" +
	"**Is this a new feature or an enhancement to an existing feature?**"

const existingFeaturePrompt = "Which existing feature are you enhancing?"

const servicePrompt = "**Which service is this feature for?**"

const otherServicePrompt = "Please specify the service name:"

const timelinePrompt = "Just a few more quick questions to help us prioritize and prepare...\n\n" +
	"**What's the target timeline for this feature?**"

const researchPrompt = "**Do you have any existing research or customer feedback?**"

const researchLinksPrompt = "Please provide links to your research or attach files:"

const stakeholderPrompt = "**Who is the primary stakeholder or PM for this project?** (Optional - press Enter to skip)"

const constraintsPrompt = "**Are there any specific constraints or requirements we should know about?** (Optional - press Enter to skip)"

const editRestartPrompt = "Let's start over. What customer problem are you trying to solve?"

const cancelledPrompt = "Intake cancelled. Feel free to start a new request anytime!"

// WelcomeReply is the opening prompt rendered before any input arrives.
func WelcomeReply() Reply {
	return Reply{
		Text: welcomePrompt,
		Options: []Option{
			{Label: "Yes, let's go!", Value: "yes"},
			{Label: "Sure", Value: "sure"},
		},
	}
}
