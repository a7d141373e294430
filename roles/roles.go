// Package roles implements role tokens, matchers and role-dependent
// values (Var).
//
// A Role selects which conditional content of a declaration graph is
// active during one compilation. Matchers form a closed set of variants so
// that matching stays total and has no hidden state; the Predicate variant
// is an expr-lang expression over the environment {role string}, compiled
// once at declaration time.
package roles

type Role string

// Default is the role used when a compilation does not name one.
const Default Role = "default"
