package models

import "errors"

// ActionResponse is the JSON envelope returned by the action endpoint
type ActionResponse struct {
	Success bool         `json:"success"`
	Action  Action       `json:"action,omitempty"`
	Data    ActionResult `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Cached  bool         `json:"cached,omitempty"`
	Raw     string       `json:"raw,omitempty"`
}

// NewSuccessResponse wraps a parsed result
func NewSuccessResponse(action Action, data ActionResult, cached bool) ActionResponse {
	return ActionResponse{
		Success: true,
		Action:  action,
		Data:    data,
		Cached:  cached,
	}
}

// NewErrorResponse builds the failure envelope for err. Raw model text is
// attached only when the model output could not be parsed.
func NewErrorResponse(err error) ActionResponse {
	resp := ActionResponse{Success: false, Error: userMessage(err)}

	var invalid *InvalidModelOutputError
	if errors.As(err, &invalid) {
		resp.Raw = invalid.Raw
	}

	return resp
}

func userMessage(err error) string {
	var (
		badRequest *BadRequestError
		apiErr     *UpstreamError
		upstream   *UpstreamFailure
		inference  *InferenceError
		invalid    *InvalidModelOutputError
	)

	switch {
	case errors.Is(err, ErrGitHubContextMissing):
		return "GitHub context missing"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.As(err, &badRequest):
		return badRequest.Message
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.As(err, &upstream):
		return upstream.Error()
	case errors.As(err, &inference):
		return "Language model request failed"
	case errors.Is(err, ErrEmptyResponse):
		return "Language model returned an empty response"
	case errors.As(err, &invalid):
		return "Invalid JSON returned by language model"
	default:
		return "Internal server error"
	}
}
