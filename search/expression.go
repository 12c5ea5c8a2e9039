package search

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the set of item fields visible to a filter expression, e.g.
//
//	tag == "GQL" && duration > 250
//	error || name contains "login"
type Env struct {
	ID        string  `expr:"id"`
	Kind      string  `expr:"kind"`
	Name      string  `expr:"name"`
	Tag       string  `expr:"tag"`
	Error     bool    `expr:"error"`
	Duration  float64 `expr:"duration"`
	Timestamp int64   `expr:"timestamp"`
	Params    any     `expr:"params"`
	Content   any     `expr:"content"`
	Meta      any     `expr:"meta"`
}

// Expression is a compiled boolean filter over Env.
type Expression struct {
	source  string
	program *vm.Program
}

// CompileExpression type checks source against Env and requires a boolean
// result.
func CompileExpression(source string) (*Expression, error) {
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}
	return &Expression{source: source, program: program}, nil
}

// Match runs the expression. Runtime errors, such as indexing into a missing
// field, count as no match and are returned for logging.
func (e *Expression) Match(env Env) (bool, error) {
	out, err := expr.Run(e.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate expression %q: %w", e.source, err)
	}
	matched, ok := out.(bool)
	return ok && matched, nil
}

func (e *Expression) String() string {
	return e.source
}
