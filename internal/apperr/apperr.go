// Package apperr defines the stable error kinds and exit codes used
// throughout granolasync. Every component returns one of these kinds
// instead of a bare error so the command layer can map a failure to a
// process exit code without string matching.
package apperr

import "fmt"

// Kind identifies the category of a failure for exit-code mapping.
type Kind int

const (
	// KindUnknown is never returned directly; it is the zero value.
	KindUnknown Kind = iota
	KindAuth
	KindNetwork
	KindAPI
	KindParse
	KindFilesystem
	KindIndexing
	KindEmbedding
	KindSummarization
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	case KindFilesystem:
		return "filesystem"
	case KindIndexing:
		return "indexing"
	case KindEmbedding:
		return "embedding"
	case KindSummarization:
		return "summarization"
	default:
		return "unknown"
	}
}

// exitCodes mirrors the stable exit-code table: Auth=10, Network=11,
// Api=12, Parse=13, Filesystem=14, Indexing=15, Embedding=16,
// Summarization=17.
var exitCodes = map[Kind]int{
	KindAuth:          10,
	KindNetwork:       11,
	KindAPI:           12,
	KindParse:         13,
	KindFilesystem:    14,
	KindIndexing:      15,
	KindEmbedding:     16,
	KindSummarization: 17,
}

// Error is a kind-tagged error. It wraps an underlying cause so %w
// unwrapping still works for errors.Is/errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the stable process exit code for this error's kind.
// Unrecognized kinds exit 1.
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// New creates a kind-tagged error with no wrapped cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap tags err with kind, preserving it as the unwrap target.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// ExitCode inspects err for a *Error and returns its exit code, or 1
// for any other non-nil error, or 0 for a nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 1
}

// As walks err's single-error Unwrap chain for the first *Error, kept
// local so callers of this package never need an additional stdlib
// import just to probe an apperr.Error.
func As(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
