package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alimgiray/gitmentor/internal/metrics"
	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ActionOutcome is a successful pipeline run
type ActionOutcome struct {
	Action models.Action
	Result models.ActionResult
	Cached bool
}

// ActionService runs one action for one user: cache probe, GitHub fetch, normalize,
// prompt, inference, parse and cache population. Every failure is terminal for the run
// and nothing but a successfully parsed result is ever cached.
type ActionService struct {
	collector *ProfileCollector
	inference InferenceClient
	cache     InferenceCache
}

func NewActionService(collector *ProfileCollector, inference InferenceClient, cache InferenceCache) *ActionService {
	return &ActionService{
		collector: collector,
		inference: inference,
		cache:     cache,
	}
}

// Run executes rawAction on behalf of identity
func (s *ActionService) Run(ctx context.Context, identity *models.Identity, rawAction string) (*ActionOutcome, error) {
	outcome, err := s.run(ctx, identity, rawAction)

	fields := logrus.Fields{"action": rawAction}
	if identity != nil {
		fields["username"] = identity.Username
	}
	metricAction := rawAction
	if !models.Action(rawAction).IsValid() {
		metricAction = "unknown"
	}

	if err != nil {
		metrics.RecordAction(metricAction, outcomeLabel(err))
		logger.WithFields(fields).WithError(err).Warn("action failed")
		return nil, err
	}

	fields["cached"] = outcome.Cached
	if outcome.Cached {
		metrics.RecordAction(metricAction, "cached")
	} else {
		metrics.RecordAction(metricAction, "success")
	}
	logger.WithFields(fields).Info("action completed")
	return outcome, nil
}

func (s *ActionService) run(ctx context.Context, identity *models.Identity, rawAction string) (*ActionOutcome, error) {
	if identity == nil || identity.AccessToken == "" || identity.Username == "" {
		return nil, models.ErrGitHubContextMissing
	}

	if rawAction == "" {
		return nil, &models.BadRequestError{Message: "Action required"}
	}
	action := models.Action(rawAction)
	if !action.IsValid() {
		return nil, &models.BadRequestError{Message: fmt.Sprintf("Unsupported action: %s", rawAction)}
	}

	key := CacheKey(identity.Username, action)
	if cached, ok := s.cache.Get(key); ok {
		return &ActionOutcome{Action: action, Result: cached, Cached: true}, nil
	}

	profile, err := s.collector.Collect(ctx, identity, action.NeedsCommits())
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(action, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := s.inference.Infer(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := models.ParseActionResult(action, raw)
	if err != nil {
		return nil, &models.InvalidModelOutputError{Raw: raw, Err: err}
	}

	s.cache.Set(key, result)
	return &ActionOutcome{Action: action, Result: result}, nil
}

func outcomeLabel(err error) string {
	var (
		badRequest *models.BadRequestError
		upstream   *models.UpstreamFailure
		inference  *models.InferenceError
		invalid    *models.InvalidModelOutputError
	)

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return "unauthorized"
	case errors.As(err, &badRequest):
		return "bad_request"
	case errors.As(err, &upstream):
		return "upstream_failure"
	case errors.As(err, &inference):
		return "inference_error"
	case errors.Is(err, models.ErrEmptyResponse):
		return "empty_response"
	case errors.As(err, &invalid):
		return "invalid_output"
	default:
		return "error"
	}
}
