package parser

import "unicode/utf8"

// Domain is the coarse classification of a diagnostic.
type Domain uint32

const (
	// DomainParser covers faults raised while tokenizing or while walking
	// the parsed document tree with a known position.
	DomainParser Domain = 1 + iota
	// DomainValidation covers semantic faults with no usable position.
	DomainValidation
)

// Code is the domain-specific reason for a diagnostic.
type Code uint32

const (
	ErrInvalidYAML Code = 1 + iota
	ErrInvalidConfig
	ErrConfigValidation
	ErrConfigGeneric
)

// Error is the diagnostic produced for a failed parse or validation.
// The message is fully formed at construction time and embeds any source
// context; callers in other runtimes retrieve it through CopyMessage and
// Code without sharing live pointers.
type Error struct {
	domain  Domain
	code    Code
	message string
}

func newError(domain Domain, code Code, message string) *Error {
	return &Error{domain: domain, code: code, message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Domain returns the coarse classification of the diagnostic.
func (e *Error) Domain() Domain { return e.domain }

// Subcode returns the domain-specific reason.
func (e *Error) Subcode() Code { return e.code }

// Code returns the composite classification as a single comparable
// integer: the domain in the upper 32 bits, the subcode in the lower 32.
func (e *Error) Code() uint64 {
	if e == nil {
		return 0
	}
	return uint64(e.domain)<<32 | uint64(e.code)
}

// Clear resets the diagnostic to an empty state. Clearing an already
// cleared diagnostic is a no-op.
func (e *Error) Clear() {
	if e == nil {
		return
	}
	e.domain = 0
	e.code = 0
	e.message = ""
}

// CopyMessage copies the message into buf and returns the number of bytes
// written. When buf is too small the message is truncated at a rune
// boundary so the copy never ends mid-character.
func (e *Error) CopyMessage(buf []byte) int {
	if e == nil || len(buf) == 0 {
		return 0
	}
	n := len(e.message)
	if n > len(buf) {
		n = len(buf)
		for n > 0 && !utf8.RuneStart(e.message[n]) {
			n--
		}
	}
	return copy(buf, e.message[:n])
}
