// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the watcher does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail the build; warnings are
// advisory.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Merge folds another result into r.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Dashboard validates every query expression in a built dashboard against
// the known metric set.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	exprs, err := collectExprs(dash)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}
	for _, expr := range exprs {
		checkExpr(expr, known, &res)
	}
	return res
}

// Exprs validates raw PromQL expressions, e.g. from generated rule files.
func Exprs(exprs []string, known map[string]bool) Result {
	var res Result
	for _, expr := range exprs {
		checkExpr(expr, known, &res)
	}
	return res
}

func checkExpr(expr string, known map[string]bool, res *Result) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return
	}
	//nolint:errcheck,gosec // the visitor never returns an error
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("selector without metric name in %q", expr))
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		return nil
	})
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	// Histogram series carry suffixes derived from the base metric name.
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// collectExprs walks the dashboard's JSON form and gathers every "expr"
// value. Going through JSON avoids depending on the SDK's panel type zoo.
func collectExprs(dash dashboard.Dashboard) ([]string, error) {
	data, err := json.Marshal(dash)
	if err != nil {
		return nil, fmt.Errorf("marshaling dashboard: %w", err)
	}
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("unmarshaling dashboard: %w", err)
	}
	var exprs []string
	walk(root, &exprs)
	return exprs, nil
}

func walk(node any, exprs *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if s, ok := val.(string); ok && key == "expr" {
				if s != "" {
					*exprs = append(*exprs, s)
				}
				continue
			}
			walk(val, exprs)
		}
	case []any:
		for _, item := range v {
			walk(item, exprs)
		}
	}
}
