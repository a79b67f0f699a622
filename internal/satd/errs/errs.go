// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package errs defines the error kinds the pipeline distinguishes
// for recovery purposes (spec §7: ERROR HANDLING DESIGN). Every kind
// except InvariantViolation is absorbed into degraded output; only
// InvariantViolation surfaces as a failed run.
package errs

import "errors"

// Kind identifies which recovery policy applies to an error.
type Kind int

const (
	// KindUnreadableFile: scanner could not read a file. Log and skip it.
	KindUnreadableFile Kind = iota
	// KindParseFailure: an analyzer could not parse a file. Skip that
	// analyzer for that file.
	KindParseFailure
	// KindVcsUnavailable: blame or bulk search failed. Use sentinel
	// metadata and fall back to the filesystem walk.
	KindVcsUnavailable
	// KindClassifierRateLimit: classifier signaled a rate limit.
	// Retry with exponential backoff, up to 3 times.
	KindClassifierRateLimit
	// KindClassifierTimeout: classifier call exceeded its deadline.
	// Treated as a negative classification.
	KindClassifierTimeout
	// KindClassifierOther: any other classifier failure. Negative
	// classification, error recorded.
	KindClassifierOther
	// KindInvariantViolation: a graph/merge/scoring invariant was
	// violated. Fatal; aborts the run.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindUnreadableFile:
		return "unreadable_file"
	case KindParseFailure:
		return "parse_failure"
	case KindVcsUnavailable:
		return "vcs_unavailable"
	case KindClassifierRateLimit:
		return "classifier_rate_limit"
	case KindClassifierTimeout:
		return "classifier_timeout"
	case KindClassifierOther:
		return "classifier_other"
	case KindInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can branch
// on recovery policy with errors.As, and unwrap to the cause with
// errors.Is/errors.Unwrap.
type Error struct {
	Kind  Kind
	Cause error
	Msg   string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a Kind-tagged error.
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// IsKind reports whether err (or something it wraps) is an *Error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Fatal reports whether err represents a fatal InvariantViolation
// that should abort the run rather than be absorbed.
func Fatal(err error) bool {
	return IsKind(err, KindInvariantViolation)
}
