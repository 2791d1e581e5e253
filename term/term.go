// Package term defines the minimal term representation the congruence
// closure core is opaque over: applications of a free signature, equality
// atoms, and a small set of interpreted constants.
package term

// Sort names the result type of a term. The core never inspects a Sort
// beyond equality, but callers use it to reject ill-sorted merges.
type Sort struct {
	Name string
}

// BoolSort is the sort of equality atoms and of True/False.
var BoolSort = Sort{Name: "Bool"}

// Decl is a function or constant symbol. Two Decls denote the same symbol
// iff their Name and Sort are equal; Commutative marks binary symbols
// whose arguments may be explained crosswise (spec §4.8).
type Decl struct {
	Name        string
	Sort        Sort
	Commutative bool
}

// Kind distinguishes the handful of term shapes the core treats specially.
type Kind uint8

const (
	// KindApp is an ordinary application f(a1,...,an), n >= 0.
	KindApp Kind = iota
	// KindEq is an equality atom (lhs = rhs); kept out of the congruence
	// table and given fast-path treatment (spec §4.4).
	KindEq
	// KindTrue is the distinguished true constant.
	KindTrue
	// KindFalse is the distinguished false constant.
	KindFalse
	// KindValue is a unique interpreted value (a numeral, a string
	// literal, ...): any two distinct KindValue terms denote distinct
	// domain elements.
	KindValue
)

// Expr is one hash-consed term. Expr pointers are the stable structural
// identity the core's "id" requirement refers to: two calls to a Builder
// method that would produce the same term return the same *Expr.
type Expr struct {
	id      int64
	decl    Decl
	sort    Sort
	args    []*Expr
	kind    Kind
	literal string // printable payload for KindValue, empty otherwise
}

// ID is the stable identity of this term, assigned once at construction.
func (e *Expr) ID() int64 { return e.id }

// Decl is the head symbol of an application, or the fixed "=" / "true" /
// "false" / value decl for the other kinds.
func (e *Expr) Decl() Decl { return e.decl }

// Sort is the term's result sort.
func (e *Expr) Sort() Sort { return e.sort }

// Args are the term's ordered children. Empty for constants.
func (e *Expr) Args() []*Expr { return e.args }

// Arity is len(Args()).
func (e *Expr) Arity() int { return len(e.args) }

// IsEq reports whether e is an equality atom (lhs = rhs).
func (e *Expr) IsEq() bool { return e.kind == KindEq }

// IsTrue reports whether e is the distinguished true constant.
func (e *Expr) IsTrue() bool { return e.kind == KindTrue }

// IsFalse reports whether e is the distinguished false constant.
func (e *Expr) IsFalse() bool { return e.kind == KindFalse }

// IsUniqueValue reports whether e denotes a fixed domain element distinct
// from every other unique value: true, false, and numeral-like literals.
func (e *Expr) IsUniqueValue() bool {
	return e.kind == KindTrue || e.kind == KindFalse || e.kind == KindValue
}

// Literal is the printable payload of a KindValue term, or "" otherwise.
func (e *Expr) Literal() string { return e.literal }

func (e *Expr) String() string {
	switch e.kind {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindValue:
		return e.literal
	case KindEq:
		return "(= " + e.args[0].String() + " " + e.args[1].String() + ")"
	default:
		if len(e.args) == 0 {
			return e.decl.Name
		}
		s := "(" + e.decl.Name
		for _, a := range e.args {
			s += " " + a.String()
		}
		return s + ")"
	}
}
