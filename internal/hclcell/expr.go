package hclcell

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// heaviside mirrors the H() helper emitted into the generated script, so a
// distribution validated here behaves identically at simulation time.
var heaviside = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "x", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		x, _ := args[0].AsBigFloat().Float64()
		if x >= 0 {
			return cty.NumberIntVal(1), nil
		}
		return cty.NumberIntVal(0), nil
	},
})

// samplePositions are the path positions a distribution expression is
// evaluated at during validation, spanning the normalized range.
var samplePositions = []float64{0, 0.25, 0.5, 0.75, 1}

// validateDistribution checks that a variable-mechanism expression is a
// pure numeric function of the path variable p, by evaluating it at sample
// positions. It returns the expression's verbatim source text for emission.
func validateDistribution(expr hcl.Expression, sources map[string][]byte) (string, error) {
	if expr == nil {
		return "", fmt.Errorf("missing distribution expression")
	}

	for _, p := range samplePositions {
		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{"p": cty.NumberFloatVal(p)},
			Functions: map[string]function.Function{"H": heaviside},
		}
		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return "", fmt.Errorf("distribution expression does not evaluate at p=%v: %w", p, diags)
		}
		if val.Type() != cty.Number {
			return "", fmt.Errorf("distribution expression yields %s at p=%v, want a number", val.Type().FriendlyName(), p)
		}
	}

	return exprText(expr, sources), nil
}

// exprText recovers the verbatim source of an expression from the parsed
// file bytes.
func exprText(expr hcl.Expression, sources map[string][]byte) string {
	rng := expr.Range()
	src, ok := sources[rng.Filename]
	if !ok {
		return ""
	}
	return strings.TrimSpace(string(rng.SliceBytes(src)))
}
