package ideas

import (
	"errors"
	"fmt"
)

var ErrEmptyWasteType = errors.New("waste type is required")

// ServiceError reports a failed call to the text generation service.
type ServiceError struct {
	Model string
	Err   error
}

func (e *ServiceError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("text generation failed: %v", e.Err)
	}
	return fmt.Sprintf("text generation with %s failed: %v", e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
