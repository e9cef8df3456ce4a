package charges

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trading-journal/internal/models"
)

// Property: a zero-quantity trade produces an all-zero breakdown regardless
// of prices or direction.
func TestPropertyZeroQuantityIsAllZero(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("zero quantity yields all-zero breakdown", prop.ForAll(
		func(buy, sell float64, short bool) bool {
			dir := models.Long
			if short {
				dir = models.Short
			}
			b := Compute(dir, 0, buy, sell)
			return b.Turnover == 0 && b.Brokerage == 0 && b.STT == 0 &&
				b.ExchangeCharges == 0 && b.StampDuty == 0 && b.SEBIFees == 0 &&
				b.GST == 0 && b.TotalCharges == 0 && b.Gross == 0 && b.Net == 0
		},
		gen.Float64Range(0, 100000),
		gen.Float64Range(0, 100000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: flipping the direction flips the sign of Gross but leaves the
// charge side of the breakdown untouched.
func TestPropertyDirectionFlipsGross(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("direction flips gross, charges unchanged", prop.ForAll(
		func(qty, buy, sell float64) bool {
			long := Compute(models.Long, qty, buy, sell)
			short := Compute(models.Short, qty, buy, sell)

			if long.Gross != -short.Gross {
				return false
			}
			return long.Turnover == short.Turnover &&
				long.Brokerage == short.Brokerage &&
				long.STT == short.STT &&
				long.TotalCharges == short.TotalCharges
		},
		gen.Float64Range(1, 10000),
		gen.Float64Range(0.05, 50000),
		gen.Float64Range(0.05, 50000),
	))

	properties.TestingRun(t)
}

// Property: on every returned breakdown, Net reconstructs exactly from the
// rounded Gross and TotalCharges.
func TestPropertyNetReconstruction(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("net equals gross minus total charges", prop.ForAll(
		func(qty, buy, sell float64, short bool) bool {
			dir := models.Long
			if short {
				dir = models.Short
			}
			b := Compute(dir, qty, buy, sell)
			return b.Net == Round2(b.Gross-b.TotalCharges)
		},
		gen.Float64Range(1, 10000),
		gen.Float64Range(0.05, 50000),
		gen.Float64Range(0.05, 50000),
		gen.Bool(),
	))

	properties.Property("total charges are never negative", prop.ForAll(
		func(qty, buy, sell float64) bool {
			b := Compute(models.Long, qty, buy, sell)
			return b.TotalCharges >= 0 && b.Brokerage <= brokerageCap
		},
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 50000),
		gen.Float64Range(0, 50000),
	))

	properties.TestingRun(t)
}

// Property: Round2 is idempotent and stays within half a paisa of its input.
func TestPropertyRound2(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Round2 is idempotent", prop.ForAll(
		func(v float64) bool {
			r := Round2(v)
			return Round2(r) == r
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("Round2 stays within half a paisa", prop.ForAll(
		func(v float64) bool {
			return math.Abs(Round2(v)-v) <= 0.005+1e-9
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}
