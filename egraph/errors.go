package egraph

import "fmt"

// ErrCode is a closed set of precondition violations the core checks at
// its public boundary, mirroring the teacher's frontend/ilerr.ErrCode
// shape: a small enum plus an error type that carries it (spec §7,
// "precondition violations ... are programmer errors").
type ErrCode int

const (
	None ErrCode = iota
	SortMismatch
	UnknownExpr
	NodeFreed
)

// ProgrammerError reports a precondition violation: a caller mistake
// that is never a consequence of the asserted problem itself. The only
// check that raises one is Merge's sort check, which panics with a
// SortMismatch ProgrammerError; UnknownExpr and NodeFreed are defined
// but not raised anywhere in this package.
type ProgrammerError struct {
	Code    ErrCode
	Message string
}

func (e *ProgrammerError) Error() string {
	return fmt.Sprintf("(E%03d) %s", e.Code, e.Message)
}

func newErr(code ErrCode, format string, args ...any) *ProgrammerError {
	return &ProgrammerError{Code: code, Message: fmt.Sprintf(format, args...)}
}
