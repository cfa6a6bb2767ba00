package signals

import (
	"math"

	"github.com/ternarybob/conflux/internal/models"
)

// clamp restricts a value to a range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// round rounds to specified decimal places
func round(value float64, places int) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(value*mult) / mult
}

// roundHalf rounds to the nearest 0.5 step
func roundHalf(value float64) float64 {
	return math.Round(value*2) / 2
}

// finalScore clamps a raw component sum to [-2, 2] on the 0.5 grid
func finalScore(total float64) float64 {
	return clamp(roundHalf(total), -2, 2)
}

// closes extracts closing prices from bars
func closes(bars []models.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// sma calculates the simple moving average of the last n closes.
// Returns 0, false when there is not enough history.
func sma(values []float64, n int) (float64, bool) {
	if n <= 0 || len(values) < n {
		return 0, false
	}
	sum := 0.0
	for i := len(values) - n; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(n), true
}

// rsi calculates the relative strength index over the trailing period using
// simple average gains and losses. Returns 100 when there are no losses.
func rsi(values []float64, period int) (float64, bool) {
	if len(values) < period+1 {
		return 0, false
	}
	var avgGain, avgLoss float64
	for i := len(values) - period; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// ema calculates the exponential moving average seeded from the first value
func ema(values []float64, period int) float64 {
	k := 2.0 / float64(period+1)
	e := values[0]
	for i := 1; i < len(values); i++ {
		e = values[i]*k + e*(1-k)
	}
	return e
}

// macdResult holds the MACD line, signal line, and histogram
type macdResult struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// macd computes the 12/26 MACD with a 9-period signal line over the running
// MACD series. Needs at least 35 bars.
func macd(values []float64) (macdResult, bool) {
	if len(values) < 35 {
		return macdResult{}, false
	}

	macdValues := make([]float64, 0, len(values)-1)
	ema12 := values[0]
	ema26 := values[0]
	k12 := 2.0 / 13
	k26 := 2.0 / 27

	for i := 1; i < len(values); i++ {
		ema12 = values[i]*k12 + ema12*(1-k12)
		ema26 = values[i]*k26 + ema26*(1-k26)
		macdValues = append(macdValues, ema12-ema26)
	}

	signal := ema(macdValues[len(macdValues)-9:], 9)
	line := macdValues[len(macdValues)-1]

	return macdResult{
		Line:      line,
		Signal:    signal,
		Histogram: line - signal,
	}, true
}

// volumeRatio compares the recent 5-day average volume to the 20-day average
// preceding the most recent bar. Needs at least 21 bars.
func volumeRatio(bars []models.PriceBar) (float64, bool) {
	if len(bars) < 21 {
		return 0, false
	}
	var recent, base float64
	for _, b := range bars[len(bars)-5:] {
		recent += b.Volume
	}
	for _, b := range bars[len(bars)-21 : len(bars)-1] {
		base += b.Volume
	}
	recent /= 5
	base /= 20
	if base == 0 {
		return 0, false
	}
	return recent / base, true
}

// annualizedVolatility computes the annualized volatility of daily log
// returns (sample variance, 252 trading days). Needs at least 20 bars.
func annualizedVolatility(bars []models.PriceBar) (float64, bool) {
	if len(bars) < 20 {
		return 0, false
	}
	returns := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close <= 0 || bars[i].Close <= 0 {
			continue
		}
		returns = append(returns, math.Log(bars[i].Close/bars[i-1].Close))
	}
	if len(returns) < 2 {
		return 0, false
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(252), true
}

// maxDrawdown computes the worst peak-to-trough decline over the bars as a
// negative fraction.
func maxDrawdown(bars []models.PriceBar) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}
	peak := bars[0].Close
	maxDd := 0.0
	for _, b := range bars {
		if b.Close > peak {
			peak = b.Close
		}
		if peak > 0 {
			dd := (b.Close - peak) / peak
			if dd < maxDd {
				maxDd = dd
			}
		}
	}
	return maxDd, true
}
