package models

// Action is one of the supported feedback modes
type Action string

const (
	ActionAnalyze Action = "analyze"
	ActionSuggest Action = "suggest"
	ActionImprove Action = "improve"
	ActionRoast   Action = "roast"
	ActionJudge   Action = "judge"
)

// SupportedActions lists every action in display order
var SupportedActions = []Action{
	ActionAnalyze,
	ActionSuggest,
	ActionImprove,
	ActionRoast,
	ActionJudge,
}

// IsValid reports whether a is one of SupportedActions
func (a Action) IsValid() bool {
	for _, supported := range SupportedActions {
		if a == supported {
			return true
		}
	}
	return false
}

// NeedsCommits reports whether the action reads recent commit messages
func (a Action) NeedsCommits() bool {
	return a == ActionJudge
}

// ActionRequest is the body of POST /api/ai/action
type ActionRequest struct {
	Action string `json:"action"`
}
