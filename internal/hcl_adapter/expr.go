package hcl_adapter

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/linkorder/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// configVar is the only variable a link expression may reference.
const configVar = "config"

// functions are the functions available to link expressions.
var functions = map[string]function.Function{
	"concat":   stdlib.ConcatFunc,
	"contains": stdlib.ContainsFunc,
	"distinct": stdlib.DistinctFunc,
	"format":   stdlib.FormatFunc,
	"lower":    stdlib.LowerFunc,
	"upper":    stdlib.UpperFunc,
}

// ExprList is a config.ItemList backed by an HCL expression.
type ExprList struct {
	expr hcl.Expression
}

var _ config.ItemList = (*ExprList)(nil)

// newExprList validates expr and wraps it. A nil expression or one standing
// for an omitted optional attribute gives a nil list.
func newExprList(expr hcl.Expression) (*ExprList, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return nil, nil
	}
	return &ExprList{expr: expr}, checkExpr(expr)
}

// Items evaluates the expression for one configuration and converts the
// result to a list of strings. A null result is an empty list.
func (l *ExprList) Items(configName string) ([]string, error) {
	if l == nil {
		return nil, nil
	}
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{configVar: cty.StringVal(configName)},
		Functions: functions,
	}
	val, diags := l.expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: link list is not known", l.expr.Range())
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("%s: link list must be a list of strings, got %s", l.expr.Range(), val.Type().FriendlyName())
	}
	var items []string
	if err := gocty.FromCtyValue(listVal, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", l.expr.Range(), err)
	}
	return items, nil
}

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder fills omitted optional attributes with zero-width
// placeholder expressions.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// checkExpr rejects references to anything but `config` and calls to
// unknown functions, so mistakes surface at load time rather than during a
// resolution.
func checkExpr(expr hcl.Expression) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, traversal := range expr.Variables() {
		if root := traversal.RootName(); root != configVar {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown variable",
				Detail:   fmt.Sprintf("Link lists may only refer to %q, not %q.", configVar, root),
				Subject:  traversal.SourceRange().Ptr(),
			})
		}
	}
	for _, name := range calledFunctions(expr) {
		if _, ok := functions[name]; !ok {
			known := make([]string, 0, len(functions))
			for k := range functions {
				known = append(known, k)
			}
			slices.Sort(known)
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown function",
				Detail:   fmt.Sprintf("Function %q is not available; use one of %v.", name, known),
				Subject:  expr.Range().Ptr(),
			})
		}
	}
	return diags
}

// calledFunctions returns the sorted names of every function called in expr.
func calledFunctions(expr hcl.Expression) []string {
	found := make(map[string]struct{})
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		walkForFunctions(syntaxExpr, found)
	}
	names := make([]string, 0, len(found))
	for f := range found {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// walkForFunctions recursively walks the AST, looking only for function calls.
func walkForFunctions(expr hclsyntax.Expression, found map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		found[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, found)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, found)
		walkForFunctions(e.RHS, found)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, found)
		walkForFunctions(e.TrueResult, found)
		walkForFunctions(e.FalseResult, found)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, found)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			walkForFunctions(part, found)
		}
	case *hclsyntax.TemplateWrapExpr:
		walkForFunctions(e.Wrapped, found)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, found)
		}
	case *hclsyntax.ForExpr:
		walkForFunctions(e.CollExpr, found)
		walkForFunctions(e.KeyExpr, found)
		walkForFunctions(e.ValExpr, found)
		walkForFunctions(e.CondExpr, found)
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, found)
		walkForFunctions(e.Key, found)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, found)
	}
}
