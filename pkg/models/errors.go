package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCredential = errors.New("missing API key: set it with `docassist key set`")
	ErrEmptyPrompt       = errors.New("please enter a prompt")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrNoImageProduced   = errors.New("no image produced")
)

// ProviderError is a non-success answer from a provider. Message is shown to
// the user as is.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string { return e.Message }

// NoImageProducedError is returned when an image provider answered without
// any image part. Text carries whatever text parts it sent instead.
type NoImageProducedError struct {
	Text string
}

func (e *NoImageProducedError) Error() string {
	if e.Text == "" {
		return ErrNoImageProduced.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNoImageProduced, e.Text)
}

func (e *NoImageProducedError) Is(target error) bool { return target == ErrNoImageProduced }

// CheckRequest applies the preconditions shared by every provider: a
// configured credential first, then a non-blank prompt.
func CheckRequest(credential, prompt string) error {
	if credential == "" {
		return ErrMissingCredential
	}
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}
