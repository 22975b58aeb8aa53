package sequence

import (
	"context"
	"time"
)

// MockGenerator is a test implementation of Generator.
type MockGenerator struct {
	NextCodeFunc          func(ctx context.Context, docType, prefix string, scope Scope) (string, error)
	NextInvoiceNumberFunc func(ctx context.Context, docType string, scope Scope, period time.Time) (string, error)
}

// NextCode implements Generator.
func (m *MockGenerator) NextCode(ctx context.Context, docType, prefix string, scope Scope) (string, error) {
	if m.NextCodeFunc != nil {
		return m.NextCodeFunc(ctx, docType, prefix, scope)
	}
	return prefix + "-000001", nil
}

// NextInvoiceNumber implements Generator.
func (m *MockGenerator) NextInvoiceNumber(ctx context.Context, docType string, scope Scope, period time.Time) (string, error) {
	if m.NextInvoiceNumberFunc != nil {
		return m.NextInvoiceNumberFunc(ctx, docType, scope, period)
	}
	return FormatInvoiceNumber(period, 1), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
