package sequence

import (
	"context"
	"time"
)

// LastCodeSource looks up the most recently issued code for a document type
// within a scope. Implementations live in the storage layer.
type LastCodeSource interface {
	// LastCode returns the last issued code in scope, or ok=false when the
	// scope has no rows yet.
	LastCode(ctx context.Context, docType string, scope Scope) (code string, ok bool, err error)

	// LastInvoiceNumber returns the last issued invoice number for the
	// calendar month of period, or ok=false when the month has none.
	LastInvoiceNumber(ctx context.Context, docType string, scope Scope, period time.Time) (number string, ok bool, err error)
}

// Generator produces the next business code for a document type.
type Generator interface {
	NextCode(ctx context.Context, docType, prefix string, scope Scope) (string, error)
	NextInvoiceNumber(ctx context.Context, docType string, scope Scope, period time.Time) (string, error)
}

// Service derives the next code from the last issued one. There is no
// application-level serialization: two concurrent requests can read the same
// last code; isolation is delegated to the store, as in the rest of the
// persistence layer.
type Service struct {
	source LastCodeSource
	policy MalformedCodePolicy
}

// NewService creates a generator over the given source.
func NewService(source LastCodeSource, policy MalformedCodePolicy) *Service {
	return &Service{source: source, policy: policy}
}

// NextCode returns the next dash-separated code for docType in scope.
// An empty scope starts the sequence at 1.
func (s *Service) NextCode(ctx context.Context, docType, prefix string, scope Scope) (string, error) {
	last, ok, err := s.source.LastCode(ctx, docType, scope)
	if err != nil {
		return "", err
	}

	var seq int64 = 1
	if ok {
		prev, err := SuffixFromCode(last, s.policy)
		if err != nil {
			return "", err
		}
		seq = prev + 1
	}

	return FormatCode(prefix, scope, seq), nil
}

// NextInvoiceNumber returns the next YYMM-prefixed invoice number for the
// month of period.
func (s *Service) NextInvoiceNumber(ctx context.Context, docType string, scope Scope, period time.Time) (string, error) {
	last, ok, err := s.source.LastInvoiceNumber(ctx, docType, scope, period)
	if err != nil {
		return "", err
	}

	var seq int64 = 1
	if ok {
		prev, err := SuffixFromInvoiceNumber(last, s.policy)
		if err != nil {
			return "", err
		}
		seq = prev + 1
	}

	return FormatInvoiceNumber(period, seq), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*Service)(nil)
