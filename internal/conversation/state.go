package conversation

// Step identifies where a conversation currently is. Steps advance strictly
// through Advance; there is no implicit state outside the State value.
type Step string

const (
	StepWelcome         Step = "welcome"
	StepProblem         Step = "problem"
	StepProblemConfirm  Step = "problem_confirm"
	StepFeatureType     Step = "feature_type"
	StepExistingFeature Step = "existing_feature"
	StepService         Step = "service"
	StepOtherService    Step = "other_service"
	StepTimeline        Step = "timeline"
	StepResearch        Step = "research"
	StepResearchLinks   Step = "research_links"
	StepStakeholder     Step = "stakeholder"
	StepConstraints     Step = "constraints"
	StepReviewConfirm   Step = "review_confirm"
	StepSubmitting      Step = "submitting"
	StepComplete        Step = "complete"
	StepCancelled       Step = "cancelled"
)

// Terminal reports whether the conversation has ended.
func (s Step) Terminal() bool {
	return s == StepComplete || s == StepCancelled
}

// Answers holds everything collected so far. The zero value is a fresh
// conversation with nothing answered.
type Answers struct {
	Problem         string `json:"problem,omitempty"`
	FeatureType     string `json:"featureType,omitempty"`
	ExistingFeature string `json:"existingFeature,omitempty"`
	Service         string `json:"service,omitempty"`
	OtherService    string `json:"otherService,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	HasResearch     string `json:"hasResearch,omitempty"`
	ResearchLinks   string `json:"researchLinks,omitempty"`
	Stakeholder     string `json:"stakeholder,omitempty"`
	Constraints     string `json:"constraints,omitempty"`
}

// State is the complete, serializable conversation state. It round-trips
// through JSON unchanged so drafts can be saved and resumed.
type State struct {
	Step    Step    `json:"step"`
	Answers Answers `json:"answers"`
}

// NewState returns the state of a conversation that has not started yet.
func NewState() State {
	return State{Step: StepWelcome}
}
