package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleawatch/fleawatch/tools/dashgen/validate"
)

var known = map[string]bool{
	"fleawatch_cycle_duration_seconds": true,
	"fleawatch_matches_total":          true,
	"fleawatch:matches:rate5m":         true,
	"up":                               true,
}

func TestExprs_Valid(t *testing.T) {
	t.Parallel()

	exprs := []string{
		`rate(fleawatch_matches_total[5m])`,
		`fleawatch:matches:rate5m * 60`,
		`histogram_quantile(0.95, sum(rate(fleawatch_cycle_duration_seconds_bucket[5m])) by (le))`,
		`absent(up{job="fleawatch"})`,
		`time() - up`,
	}

	result := validate.Exprs(exprs, known)
	assert.True(t, result.Ok(), "errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestExprs_UnknownMetric(t *testing.T) {
	t.Parallel()

	result := validate.Exprs([]string{`rate(fleawatch_bogus_total[5m])`}, known)
	require.False(t, result.Ok())
	assert.Contains(t, result.Errors[0], "fleawatch_bogus_total")
}

func TestExprs_ParseError(t *testing.T) {
	t.Parallel()

	result := validate.Exprs([]string{`rate(fleawatch_matches_total[5m)`}, known)
	require.False(t, result.Ok())
	assert.Contains(t, result.Errors[0], "parsing")
}

func TestExprs_HistogramSuffixes(t *testing.T) {
	t.Parallel()

	exprs := []string{
		`fleawatch_cycle_duration_seconds_bucket`,
		`fleawatch_cycle_duration_seconds_sum`,
		`fleawatch_cycle_duration_seconds_count`,
	}
	result := validate.Exprs(exprs, known)
	assert.True(t, result.Ok(), "errors: %v", result.Errors)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := validate.Exprs([]string{`rate(fleawatch_bogus_total[5m])`}, known)
	b := validate.Exprs([]string{`fleawatch_matches_total`}, known)
	b.Merge(a)
	assert.False(t, b.Ok())
	assert.Len(t, b.Errors, 1)
}
