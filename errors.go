package reagent

import "errors"

var (
	// ErrUnknownTool is returned when an action names a tool that is not
	// registered in the toolbox.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidToolInput is returned when a tool input fails to decode or
	// violates the tool's parameter schema.
	ErrInvalidToolInput = errors.New("invalid tool input")

	// ErrEmptyResponse is returned when the model produces a response with
	// no choices.
	ErrEmptyResponse = errors.New("model returned no choices")

	// ErrUnknownStopMethod is returned when the early-stop resolver is given
	// a stop method it does not recognize.
	ErrUnknownStopMethod = errors.New("unknown stop method")
)
