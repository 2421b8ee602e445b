// Package yield converts raw APR samples into the derived earning grid:
// APR and APY across three windows, with and without swap fees, plus the
// pool-fee and farm breakdowns and ALM rebalance activity.
package yield

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaultlens/vaultlens/internal/domain"
)

const (
	almFixedPointDecimals = 8

	secondsPerDay  = int64(86400)
	secondsPerWeek = 7 * secondsPerDay
)

var daysPerYear = decimal.NewFromInt(365)

// Input carries everything one yield computation needs. Capabilities come
// from the strategy classifier so no strategy names leak in here.
type Input struct {
	Samples       domain.APRSamples
	Capabilities  domain.StrategyCapabilities
	ALMFeePercent string
	Rebalances    []domain.RebalanceSample
	Now           time.Time
}

// Output is the derived yield metric set for one vault.
type Output struct {
	Earning domain.EarningData
	// PoolSwapFeesAPR is nil when the strategy earns no swap fees.
	PoolSwapFeesAPR *domain.WindowValues
	FarmAPR         domain.WindowValues
	DailySimpleAPR  decimal.Decimal
	// Rebalances is non-nil exactly when rebalance samples were supplied.
	Rebalances *domain.RebalanceCounts
}

// Calculate derives the full earning grid. Missing or malformed numeric
// input coerces to zero; this function never fails.
func Calculate(in Input) Output {
	s := in.Samples

	latestWithout := domain.LenientDecimal(s.TotalWithoutFees.Latest)
	poolDaily := domain.LenientDecimal(s.PoolSwapFees.Daily)
	poolWeekly := domain.LenientDecimal(s.PoolSwapFees.Weekly)
	farmDaily := domain.LenientDecimal(s.Farm.Daily)
	farmWeekly := domain.LenientDecimal(s.Farm.Weekly)

	// latestFeeComponent blends into the "latest" total even though it is
	// a daily figure. The mixed-window blend is carried intentionally from
	// the upstream data source, not a bug to fix here.
	latestFeeComponent := poolDaily

	if in.Capabilities.IsALM {
		fee := domain.LenientDecimal(in.ALMFeePercent)
		// the override always replaces the reported pool figures for ALM
		// vaults; with no recorded rebalance all three clamp to zero
		var latest domain.RebalanceSample
		if len(in.Rebalances) > 0 {
			latest = in.Rebalances[0]
		}

		poolDaily = afterFee(domain.FromFixedPoint(latest.Value0, almFixedPointDecimals), fee)
		poolWeekly = afterFee(domain.FromFixedPoint(latest.Value2, almFixedPointDecimals), fee)
		latestFeeComponent = afterFee(domain.FromFixedPoint(latest.Value1, almFixedPointDecimals), fee)
	}

	latestWith := latestWithout.Add(latestFeeComponent)
	// a reported latest total wins over the blend, same rule as the
	// daily and weekly cells
	if v, ok := domain.ParseSample(s.TotalWithFees.Latest); ok {
		latestWith = v
	}
	dailyTotalWith := poolDaily.Add(farmDaily)
	weeklyTotalWith := poolWeekly.Add(farmWeekly)

	aprWith := windowGrid(latestWith,
		s.TotalWithFees.Daily, dailyTotalWith,
		s.TotalWithFees.Weekly, weeklyTotalWith)
	aprWithout := windowGrid(latestWithout,
		s.TotalWithoutFees.Daily, farmDaily,
		s.TotalWithoutFees.Weekly, farmWeekly)

	out := Output{
		Earning: domain.EarningData{
			APR: domain.YieldBreakdown{WithFees: aprWith, WithoutFees: aprWithout},
			APY: domain.YieldBreakdown{WithFees: compound(aprWith), WithoutFees: compound(aprWithout)},
		},
		FarmAPR:        aprWithout,
		DailySimpleAPR: domain.RoundPercent(latestWith.Div(daysPerYear)),
	}

	if in.Capabilities.HasSwapFees {
		out.PoolSwapFeesAPR = &domain.WindowValues{
			Latest: domain.RoundPercent(latestFeeComponent),
			Daily:  domain.RoundPercent(poolDaily),
			Weekly: domain.RoundPercent(poolWeekly),
		}
	}

	if in.Rebalances != nil {
		out.Rebalances = countRebalances(in.Rebalances, in.Now)
	}

	return out
}

// windowGrid assembles one latest/daily/weekly row. Daily and weekly
// cells follow the window pick rule: a reported raw sample wins, a
// nonzero computed blend comes next, and the latest figure is the
// fallback of last resort.
func windowGrid(latest decimal.Decimal, dailySample string, dailyComputed decimal.Decimal,
	weeklySample string, weeklyComputed decimal.Decimal) domain.WindowValues {

	return domain.WindowValues{
		Latest: domain.RoundPercent(latest),
		Daily:  domain.RoundPercent(pickWindow(dailySample, dailyComputed, latest)),
		Weekly: domain.RoundPercent(pickWindow(weeklySample, weeklyComputed, latest)),
	}
}

func pickWindow(sample string, computed, latest decimal.Decimal) decimal.Decimal {
	if v, ok := domain.ParseSample(sample); ok {
		return v
	}
	if !computed.IsZero() {
		return computed
	}
	return latest
}

// compound maps an APR row to its APY row cell by cell, so each APY cell
// compounds exactly the APR the same cell reports.
func compound(apr domain.WindowValues) domain.WindowValues {
	return domain.WindowValues{
		Latest: domain.RoundPercent(domain.CompoundDaily(apr.Latest)),
		Daily:  domain.RoundPercent(domain.CompoundDaily(apr.Daily)),
		Weekly: domain.RoundPercent(domain.CompoundDaily(apr.Weekly)),
	}
}

// afterFee subtracts the performance fee percentage from a raw ALM value.
func afterFee(value, feePercent decimal.Decimal) decimal.Decimal {
	return value.Sub(value.Div(decimal.NewFromInt(100)).Mul(feePercent))
}

func countRebalances(samples []domain.RebalanceSample, now time.Time) *domain.RebalanceCounts {
	counts := &domain.RebalanceCounts{}
	dayCutoff := now.Unix() - secondsPerDay
	weekCutoff := now.Unix() - secondsPerWeek

	for _, sample := range samples {
		if sample.Timestamp >= dayCutoff {
			counts.Daily++
		}
		if sample.Timestamp >= weekCutoff {
			counts.Weekly++
		}
	}
	return counts
}
