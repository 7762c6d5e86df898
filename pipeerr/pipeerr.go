// Package pipeerr carries the engine's error taxonomy. Every fatal error
// raised by the execution core is tagged with a Kind so callers can tell a
// misconfigured pipeline apart from malformed input without string matching.
package pipeerr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	// KindUnknown is the zero Kind; errors not raised by this package.
	KindUnknown Kind = iota
	// KindConfiguration marks construction-time errors: invalid window sizes,
	// a non-default trigger without an accumulation mode, an out-of-range
	// partition index. Never retried.
	KindConfiguration
	// KindShape marks per-call input errors: an element handed to GroupByKey
	// that is not a key/value pair.
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s error: %s", e.kind, e.err.Error())
}

func (e *kindError) Unwrap() error { return e.err }

// Format implements fmt.Formatter so %+v prints the wrapped stack trace.
func (e *kindError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s error: %+v", e.kind, e.err)
			return
		}
		fallthrough
	default:
		fmt.Fprint(s, e.Error())
	}
}

func New(kind Kind, message string) error {
	return &kindError{kind: kind, err: errors.New(message)}
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return &kindError{kind: kind, err: errors.Errorf(format, args...)}
}

func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: errors.WithMessage(err, message)}
}

// KindOf reports the Kind of err, unwrapping through any layers added with
// pkg/errors or fmt.Errorf("%w", ...).
func KindOf(err error) Kind {
	for err != nil {
		if ke, ok := err.(*kindError); ok {
			return ke.kind
		}
		err = stderrors.Unwrap(err)
	}
	return KindUnknown
}

func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

func IsShape(err error) bool { return KindOf(err) == KindShape }
