package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ActionResult is the parsed, schema-checked reply of the language model.
// Every action has its own concrete type.
type ActionResult interface {
	Action() Action
}

type AnalyzeResult struct {
	SkillLevel            string   `json:"skillLevel" validate:"required,oneof=beginner intermediate advanced"`
	CurrentReality        string   `json:"currentReality" validate:"required"`
	WhatYouAreDoingWell   []string `json:"whatYouAreDoingWell" validate:"required"`
	WhatIsHoldingYouBack  []string `json:"whatIsHoldingYouBack" validate:"required"`
	YourPotentialIfYouAct string   `json:"yourPotentialIfYouAct" validate:"required"`
	DeveloperType         string   `json:"developerType" validate:"required"`
}

type SuggestResult struct {
	FocusSkills  []string `json:"focusSkills" validate:"required"`
	ProjectIdeas []string `json:"projectIdeas" validate:"required"`
	StopDoing    []string `json:"stopDoing" validate:"required"`
	DoubleDownOn []string `json:"doubleDownOn" validate:"required"`
}

type ImproveResult struct {
	Improvements        []string `json:"improvements" validate:"required"`
	MissingPractices    []string `json:"missingPractices" validate:"required"`
	RefactorSuggestions []string `json:"refactorSuggestions" validate:"required"`
}

type RoastResult struct {
	HardTruths              []string `json:"hardTruths" validate:"required"`
	BadSignalsYouAreSending []string `json:"badSignalsYouAreSending" validate:"required"`
	WakeUpCall              string   `json:"wakeUpCall" validate:"required"`
}

type JudgeResult struct {
	Verdict                     string   `json:"verdict" validate:"required,oneof=positive neutral negative"`
	CommitDiscipline            string   `json:"commitDiscipline" validate:"required"`
	WhatYourCommitsReveal       string   `json:"whatYourCommitsReveal" validate:"required"`
	RedFlags                    []string `json:"redFlags" validate:"required"`
	WhatYouShouldFixImmediately []string `json:"whatYouShouldFixImmediately" validate:"required"`
	JudgeClosingRemark          string   `json:"judgeClosingRemark" validate:"required"`
}

func (*AnalyzeResult) Action() Action { return ActionAnalyze }
func (*SuggestResult) Action() Action { return ActionSuggest }
func (*ImproveResult) Action() Action { return ActionImprove }
func (*RoastResult) Action() Action   { return ActionRoast }
func (*JudgeResult) Action() Action   { return ActionJudge }

var resultValidator = validator.New()

func newActionResult(action Action) (ActionResult, error) {
	switch action {
	case ActionAnalyze:
		return &AnalyzeResult{}, nil
	case ActionSuggest:
		return &SuggestResult{}, nil
	case ActionImprove:
		return &ImproveResult{}, nil
	case ActionRoast:
		return &RoastResult{}, nil
	case ActionJudge:
		return &JudgeResult{}, nil
	default:
		return nil, &UnsupportedActionError{Action: string(action)}
	}
}

// fieldNames lists the exact json keys of the struct behind result.
func fieldNames(result ActionResult) map[string]bool {
	t := reflect.TypeOf(result).Elem()
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		names[name] = true
	}
	return names
}

// ParseActionResult decodes raw model output into the schema of action.
// Keys must match the schema exactly, including case. Unknown fields, trailing data,
// missing fields and out-of-range enums are all rejected.
func ParseActionResult(action Action, raw string) (ActionResult, error) {
	result, err := newActionResult(action)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", action, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after %s result", action)
	}
	if fields == nil {
		return nil, fmt.Errorf("%s result is not an object", action)
	}

	known := fieldNames(result)
	for key := range fields {
		if !known[key] {
			return nil, fmt.Errorf("%s result has unknown field %q", action, key)
		}
	}

	// Keys are exact at this point, so the struct decode cannot fold case.
	dec = json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", action, err)
	}

	if err := resultValidator.Struct(result); err != nil {
		return nil, fmt.Errorf("%s result does not match schema: %w", action, err)
	}

	return result, nil
}
