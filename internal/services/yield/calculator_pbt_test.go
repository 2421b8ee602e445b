package yield

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vaultlens/vaultlens/internal/domain"
)

func TestCalculateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	aprSample := gen.Float64Range(0, 1000).Map(func(f float64) string {
		return strconv.FormatFloat(f, 'f', 4, 64)
	})

	properties.Property("daily compounding never loses to the simple rate", prop.ForAll(
		func(latest, daily, weekly string) bool {
			out := Calculate(Input{
				Samples: domain.APRSamples{
					TotalWithFees:    domain.APRWindowSamples{Daily: daily, Weekly: weekly},
					TotalWithoutFees: domain.APRWindowSamples{Latest: latest, Daily: daily, Weekly: weekly},
				},
				Capabilities: domain.StrategyCapabilities{HasSwapFees: true},
			})

			grids := []struct {
				apr domain.WindowValues
				apy domain.WindowValues
			}{
				{out.Earning.APR.WithFees, out.Earning.APY.WithFees},
				{out.Earning.APR.WithoutFees, out.Earning.APY.WithoutFees},
			}
			for _, g := range grids {
				if g.apy.Latest.LessThan(g.apr.Latest) ||
					g.apy.Daily.LessThan(g.apr.Daily) ||
					g.apy.Weekly.LessThan(g.apr.Weekly) {
					return false
				}
			}
			return true
		},
		aprSample, aprSample, aprSample,
	))

	properties.Property("derivation is deterministic", prop.ForAll(
		func(latest, daily string) bool {
			in := Input{
				Samples: domain.APRSamples{
					TotalWithoutFees: domain.APRWindowSamples{Latest: latest, Daily: daily},
				},
				Capabilities: domain.StrategyCapabilities{HasSwapFees: true},
			}
			first := Calculate(in)
			second := Calculate(in)
			return windowsEqual(first.Earning.APR.WithFees, second.Earning.APR.WithFees) &&
				windowsEqual(first.Earning.APY.WithFees, second.Earning.APY.WithFees) &&
				windowsEqual(first.Earning.APR.WithoutFees, second.Earning.APR.WithoutFees) &&
				windowsEqual(first.Earning.APY.WithoutFees, second.Earning.APY.WithoutFees)
		},
		aprSample, aprSample,
	))

	properties.TestingRun(t)
}

func windowsEqual(a, b domain.WindowValues) bool {
	return a.Latest.Equal(b.Latest) && a.Daily.Equal(b.Daily) && a.Weekly.Equal(b.Weekly)
}
