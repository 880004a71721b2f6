package table

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/types"
	"github.com/expr-lang/expr/vm"
)

// FilterError reports a filter expression that failed to compile or run
type FilterError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *FilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("filter %q: %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("filter %q: %s", e.Expression, e.Reason)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}

// Filter keeps rows for which the boolean expression holds.
// Columns are variables; use $env["name"] for names that are not identifiers.
// Unknown column names fail to compile. A row whose evaluation fails while a
// referenced column is null does not match.
func (t *Table) Filter(expression string) (*Table, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &FilterError{Expression: expression, Reason: "empty expression"}
	}

	declared := make(types.Map, len(t.Columns))
	for _, c := range t.Columns {
		declared[c] = types.Any
	}

	refs := &columnRefs{}
	program, err := expr.Compile(expression,
		expr.Env(declared),
		expr.AsBool(),
		expr.Patch(refs),
	)
	if err != nil {
		return nil, &FilterError{Expression: expression, Reason: "failed to compile expression", Err: err}
	}

	out := New(t.Columns...)
	env := make(map[string]any, len(t.Columns))
	for i, r := range t.Rows {
		ok, err := matches(program, env, t.Columns, r)
		if err != nil {
			if refs.anyNull(r) {
				continue
			}
			return nil, &FilterError{
				Expression: expression,
				Reason:     fmt.Sprintf("failed to evaluate row %d", i),
				Err:        err,
			}
		}
		if ok {
			out.Rows = append(out.Rows, r)
		}
	}
	return out, nil
}

func matches(program *vm.Program, env map[string]any, cols []string, r Row) (bool, error) {
	clear(env)
	for _, c := range cols {
		env[c] = r[c]
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	ok, _ := result.(bool)
	return ok, nil
}

// columnRefs collects the columns an expression reads, by name or through $env["name"]
type columnRefs struct {
	names []string
}

func (c *columnRefs) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if n.Value != "$env" {
			c.names = append(c.names, n.Value)
		}
	case *ast.MemberNode:
		if id, ok := n.Node.(*ast.IdentifierNode); ok && id.Value == "$env" {
			if key, ok := n.Property.(*ast.StringNode); ok {
				c.names = append(c.names, key.Value)
			}
		}
	}
}

func (c *columnRefs) anyNull(r Row) bool {
	for _, name := range c.names {
		if r[name] == nil {
			return true
		}
	}
	return false
}
