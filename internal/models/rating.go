package models

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

type UserRating struct {
	Username   string  `json:"username"`
	Rating     float64 `json:"rating"`
	NumRatings int     `json:"numRatings"`
}

func ValidRating(r float64) bool {
	return !math.IsNaN(r) && r >= MinRating && r <= MaxRating
}

// FoldRating adds r to a running mean over count samples and returns the new
// mean, rounded half away from zero to two decimals, and the new count. A nil
// mean counts as 0. The arithmetic is decimal so the result matches what a
// NUMERIC(3,2) column would store.
func FoldRating(mean *float64, count int, r float64) (float64, int) {
	cur := decimal.Zero
	if mean != nil {
		cur = decimal.NewFromFloat(*mean)
	}
	n := decimal.NewFromInt(int64(count))
	next := cur.Mul(n).Add(decimal.NewFromFloat(r)).Div(n.Add(decimal.NewFromInt(1)))
	return next.Round(2).InexactFloat64(), count + 1
}
