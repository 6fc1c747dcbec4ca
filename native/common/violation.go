package common

import (
	"errors"
	"fmt"
)

// Rejection classes shared by every contract in this repository. Individual
// rule failures wrap one of these sentinels so callers can classify a
// rejection with errors.Is while the host-facing surface stays a single
// accept/reject decision.
var (
	// ErrStructural marks a public input or witness that is missing, of
	// the wrong shape, or undecodable.
	ErrStructural = errors.New("contract: malformed input")
	// ErrCount marks a wrong number of entity charms for the operation.
	ErrCount = errors.New("contract: unexpected charm count")
	// ErrInvariant marks a broken field-level rule.
	ErrInvariant = errors.New("contract: invariant violated")
	// ErrAuthorization marks a signer outside the permitted set.
	ErrAuthorization = errors.New("contract: signer not authorized")
	// ErrConservation marks token outputs exceeding token inputs.
	ErrConservation = errors.New("contract: conservation violated")
)

// Violation is a single failed rule: the class it belongs to plus the rule
// context. Validation is fail-fast, so a rejected operation reports exactly
// the first rule it broke.
type Violation struct {
	kind error
	msg  string
}

// Error implements the error interface.
func (v *Violation) Error() string { return v.msg }

// Unwrap exposes the rejection class for errors.Is.
func (v *Violation) Unwrap() error { return v.kind }

func violation(kind error, format string, args ...any) error {
	return &Violation{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Structuralf builds an ErrStructural violation.
func Structuralf(format string, args ...any) error {
	return violation(ErrStructural, format, args...)
}

// Countf builds an ErrCount violation.
func Countf(format string, args ...any) error {
	return violation(ErrCount, format, args...)
}

// Invariantf builds an ErrInvariant violation.
func Invariantf(format string, args ...any) error {
	return violation(ErrInvariant, format, args...)
}

// Authorizationf builds an ErrAuthorization violation.
func Authorizationf(format string, args ...any) error {
	return violation(ErrAuthorization, format, args...)
}

// Conservationf builds an ErrConservation violation.
func Conservationf(format string, args ...any) error {
	return violation(ErrConservation, format, args...)
}
