package domain

import (
	"fmt"
	"strings"
)

// ProviderFailure records why one provider in a fallback chain failed.
type ProviderFailure struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

func (f ProviderFailure) String() string {
	return f.Provider + ": " + f.Reason
}

// AllProvidersFailedError is returned when every provider of a chain failed.
type AllProvidersFailedError struct {
	Operation string
	Failures  []ProviderFailure
}

func (e *AllProvidersFailedError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return fmt.Sprintf("all %s providers failed: [%s]", e.Operation, strings.Join(parts, "; "))
}
