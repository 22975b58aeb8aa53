// Package sequence generates sequential business codes for catalogs and
// documents: a fixed prefix, an optional 3-digit branch segment and a
// zero-padded running suffix, or a YYMM-prefixed invoice number.
//
// The suffix padding is bucketed by magnitude rather than produced by a
// fixed-width format string. Existing rows were issued under the bucketed
// scheme, so it is reproduced exactly for backward compatibility.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
)

// Mode selects how codes are scoped. It is read from the Company catalog at
// generation time, never cached per service.
type Mode string

const (
	// ModeBranch scopes the running suffix per branch and embeds the
	// branch segment in the code.
	ModeBranch Mode = "branch"

	// ModeGlobal numbers codes per tenant; the branch segment is omitted
	// entirely.
	ModeGlobal Mode = "global"
)

// Scope identifies the numbering scope for one generation request.
// The tenant is always part of the scope; the branch only under ModeBranch.
type Scope struct {
	TenantID id.ID
	BranchID *id.ID

	// BranchNumber is the ordinal of the branch within the tenant,
	// rendered as the 3-digit segment. Zero when the scope is global.
	BranchNumber int
}

// ResolveScope is the single branch-or-global strategy used by every code
// generator and branch-aware list filter.
func ResolveScope(mode Mode, tenantID, branchID id.ID, branchNumber int) Scope {
	if mode == ModeBranch && !id.IsNil(branchID) {
		b := branchID
		return Scope{TenantID: tenantID, BranchID: &b, BranchNumber: branchNumber}
	}
	return Scope{TenantID: tenantID}
}

// IsBranchScoped reports whether the scope carries a branch.
func (s Scope) IsBranchScoped() bool {
	return s.BranchID != nil
}

// MalformedCodePolicy decides what happens when the numeric suffix of the
// last issued code does not parse.
type MalformedCodePolicy int

const (
	// PolicyReject fails loudly with a business-rule error.
	PolicyReject MalformedCodePolicy = iota

	// PolicyFallbackZero treats an unparsable suffix as 0, so the next
	// code restarts at 1. Legacy behavior for tenants with dirty data.
	PolicyFallbackZero
)

// padSequence renders a document/catalog suffix. Buckets, not %06d: the
// boundaries below (including their edges) are load-bearing for existing
// codes.
func padSequence(seq int64) string {
	switch {
	case seq < 10:
		return fmt.Sprintf("00000%d", seq)
	case seq < 100:
		return fmt.Sprintf("0000%d", seq)
	case seq < 1000:
		return fmt.Sprintf("000%d", seq)
	case seq < 10000:
		return fmt.Sprintf("00%d", seq)
	case seq < 100000:
		return fmt.Sprintf("0%d", seq)
	default:
		return strconv.FormatInt(seq, 10)
	}
}

// padInvoiceSequence renders an invoice suffix (one bucket wider).
func padInvoiceSequence(seq int64) string {
	switch {
	case seq < 10:
		return fmt.Sprintf("000000%d", seq)
	case seq < 100:
		return fmt.Sprintf("00000%d", seq)
	case seq < 1000:
		return fmt.Sprintf("0000%d", seq)
	case seq < 10000:
		return fmt.Sprintf("000%d", seq)
	case seq < 100000:
		return fmt.Sprintf("00%d", seq)
	case seq < 1000000:
		return fmt.Sprintf("0%d", seq)
	default:
		return strconv.FormatInt(seq, 10)
	}
}

// FormatCode renders PREFIX-BBB-NNNNNN for a branch scope, PREFIX-NNNNNN for
// a global one.
func FormatCode(prefix string, scope Scope, seq int64) string {
	if scope.IsBranchScoped() {
		return fmt.Sprintf("%s-%03d-%s", prefix, scope.BranchNumber, padSequence(seq))
	}
	return fmt.Sprintf("%s-%s", prefix, padSequence(seq))
}

// FormatInvoiceNumber renders YYMM followed by the padded suffix,
// e.g. November 2025, first invoice -> 25110000001.
func FormatInvoiceNumber(period time.Time, seq int64) string {
	return period.Format("0601") + padInvoiceSequence(seq)
}

// SuffixFromCode extracts the numeric suffix of a previously issued dash-
// separated code. An empty code yields 0 (no prior rows in scope).
func SuffixFromCode(code string, policy MalformedCodePolicy) (int64, error) {
	if code == "" {
		return 0, nil
	}
	raw := code
	if i := strings.LastIndex(code, "-"); i >= 0 {
		raw = code[i+1:]
	}
	return parseSuffix(code, raw, policy)
}

// SuffixFromInvoiceNumber extracts the numeric suffix of an invoice number
// (everything after the 4-digit YYMM segment).
func SuffixFromInvoiceNumber(number string, policy MalformedCodePolicy) (int64, error) {
	if number == "" {
		return 0, nil
	}
	if len(number) <= 4 {
		return handleMalformed(number, policy)
	}
	return parseSuffix(number, number[4:], policy)
}

func parseSuffix(full, raw string, policy MalformedCodePolicy) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return handleMalformed(full, policy)
	}
	return n, nil
}

func handleMalformed(code string, policy MalformedCodePolicy) (int64, error) {
	if policy == PolicyFallbackZero {
		return 0, nil
	}
	return 0, apperror.NewMalformedCode(code)
}
