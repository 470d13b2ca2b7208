// Package stats computes column aggregates over the loaded dataset.
// Numerical work is delegated to gonum; this package only selects and
// filters values and formats results for the wire.
package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/vinodismyname/mcpframe/config"
	"github.com/vinodismyname/mcpframe/internal/dataset"
)

// ErrNoNumericData indicates a column holds no numeric values at all.
var ErrNoNumericData = errors.New("stats: no numeric data")

// ColumnMean returns the arithmetic mean of the column's numeric values.
// Non-numeric and missing cells are excluded, matching the convention of
// the underlying statistics stack.
func ColumnMean(tbl *dataset.Table, column string) (float64, error) {
	col, err := tbl.Column(column)
	if err != nil {
		return 0, err
	}
	vals := col.Float()
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return 0, fmt.Errorf("%w: column %q", ErrNoNumericData, column)
	}
	return stat.Mean(clean, nil), nil
}

// Round rounds v to the configured mean precision. Ties round half away
// from zero, not half to even, so a value sitting exactly on a .0005
// boundary may differ in the last digit from a banker's-rounding result.
func Round(v float64) float64 {
	pow := math.Pow10(config.DefaultMeanPrecision)
	return math.Round(v*pow) / pow
}

// FormatMean renders a rounded mean the way the wire contract expects:
// trailing zeros trimmed, but whole numbers keep a ".0" suffix so that
// integral means still read as floating-point values.
func FormatMean(v float64) string {
	s := strconv.FormatFloat(Round(v), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
