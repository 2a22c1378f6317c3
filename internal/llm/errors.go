package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies provider failures for retry decisions.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429 from the provider.
	KindRateLimited
	// KindInvalidOutput means the output was not valid for the schema.
	KindInvalidOutput
	// KindTruncated means the output hit MaxTokens.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// ProviderError is returned by every Provider for failures it can classify.
type ProviderError struct {
	Kind       ErrorKind
	RetryAfter time.Duration   // rate limits only
	Content    json.RawMessage // offending output, when there was any
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// KindOf returns the classification of err and whether it was a
// ProviderError at all.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

func unavailable(err error) error { return &ProviderError{Kind: KindUnavailable, Err: err} }

func invalidOutput(content json.RawMessage, err error) error {
	return &ProviderError{Kind: KindInvalidOutput, Content: content, Err: err}
}

// classifyStatus maps an HTTP status from a provider SDK error.
func classifyStatus(status int, err error) error {
	if status == 429 {
		return &ProviderError{Kind: KindRateLimited, Err: err}
	}
	return unavailable(err)
}
