package signals

import (
	"fmt"
	"strings"

	"github.com/ternarybob/conflux/internal/models"
)

// TrendComputer scores price trend and momentum from daily bars using moving
// average alignment, RSI, MACD, and volume participation.
type TrendComputer struct{}

// NewTrendComputer creates a new trend computer
func NewTrendComputer() *TrendComputer {
	return &TrendComputer{}
}

// minTrendBars is the minimum history required before any trend scoring.
const minTrendBars = 50

// Compute scores the trend signal for a price series
func (c *TrendComputer) Compute(bars []models.PriceBar) models.Signal {
	if len(bars) < minTrendBars {
		return models.Signal{
			ID:          models.SignalTrend,
			Name:        "Price Trend & Momentum",
			Score:       0,
			Label:       "Insufficient Data",
			Explanation: "Not enough price history to compute trend indicators.",
		}
	}

	prices := closes(bars)
	currentPrice := prices[len(prices)-1]
	components := map[string]interface{}{"current_price": currentPrice}
	explanations := []string{}
	totalScore := 0.0

	// SMA alignment
	sma50, has50 := sma(prices, 50)
	sma200, has200 := sma(prices, 200)
	if has50 {
		components["sma50"] = round(sma50, 2)
	}
	if has200 {
		components["sma200"] = round(sma200, 2)
	}

	smaScore := 0.0
	switch {
	case has50 && has200:
		if currentPrice > sma50 && sma50 > sma200 {
			smaScore = 1
			explanations = append(explanations, fmt.Sprintf(
				"Price ($%.2f) is above both the 50-day SMA ($%.2f) and 200-day SMA ($%.2f), with the 50 above the 200 - a bullish alignment.",
				currentPrice, sma50, sma200))
		} else if currentPrice < sma50 && sma50 < sma200 {
			smaScore = -1
			explanations = append(explanations, fmt.Sprintf(
				"Price ($%.2f) is below both the 50-day SMA ($%.2f) and 200-day SMA ($%.2f), with the 50 below the 200 - a bearish alignment.",
				currentPrice, sma50, sma200))
		} else {
			explanations = append(explanations, fmt.Sprintf(
				"Mixed SMA signals: price is %s the 50-day SMA ($%.2f) and %s the 200-day SMA ($%.2f).",
				aboveBelow(currentPrice > sma50), sma50, aboveBelow(currentPrice > sma200), sma200))
		}
	case has50:
		if currentPrice > sma50 {
			smaScore = 0.5
			explanations = append(explanations, fmt.Sprintf("Price is above the 50-day SMA ($%.2f) - mildly bullish.", sma50))
		} else {
			smaScore = -0.5
			explanations = append(explanations, fmt.Sprintf("Price is below the 50-day SMA ($%.2f) - mildly bearish.", sma50))
		}
	}
	components["sma_score"] = smaScore
	totalScore += smaScore

	// RSI
	rsiScore := 0.0
	if rsiVal, ok := rsi(prices, 14); ok {
		components["rsi"] = round(rsiVal, 1)
		switch {
		case rsiVal > 70:
			rsiScore = -0.5
			explanations = append(explanations, fmt.Sprintf("RSI at %.1f indicates overbought conditions - caution on further upside.", rsiVal))
		case rsiVal < 30:
			rsiScore = 0.5
			explanations = append(explanations, fmt.Sprintf("RSI at %.1f indicates oversold conditions - potential bounce opportunity.", rsiVal))
		case rsiVal > 55:
			rsiScore = 0.25
			explanations = append(explanations, fmt.Sprintf("RSI at %.1f shows moderate bullish momentum.", rsiVal))
		case rsiVal < 45:
			rsiScore = -0.25
			explanations = append(explanations, fmt.Sprintf("RSI at %.1f shows moderate bearish momentum.", rsiVal))
		default:
			explanations = append(explanations, fmt.Sprintf("RSI at %.1f is neutral - no clear momentum signal.", rsiVal))
		}
	}
	components["rsi_score"] = rsiScore
	totalScore += rsiScore

	// MACD
	macdScore := 0.0
	if m, ok := macd(prices); ok {
		components["macd_line"] = round(m.Line, 3)
		components["macd_histogram"] = round(m.Histogram, 3)
		switch {
		case m.Histogram > 0 && m.Line > 0:
			macdScore = 0.5
			explanations = append(explanations, fmt.Sprintf("MACD is positive (%.2f) with bullish histogram (%.2f) - upward momentum confirmed.", m.Line, m.Histogram))
		case m.Histogram < 0 && m.Line < 0:
			macdScore = -0.5
			explanations = append(explanations, fmt.Sprintf("MACD is negative (%.2f) with bearish histogram (%.2f) - downward momentum confirmed.", m.Line, m.Histogram))
		case m.Histogram > 0:
			macdScore = 0.25
			explanations = append(explanations, fmt.Sprintf("MACD histogram is turning positive (%.2f) - potential bullish crossover.", m.Histogram))
		default:
			macdScore = -0.25
			explanations = append(explanations, fmt.Sprintf("MACD histogram is turning negative (%.2f) - potential bearish crossover.", m.Histogram))
		}
	}
	components["macd_score"] = macdScore
	totalScore += macdScore

	// Volume confirms direction but never sets it
	if ratio, ok := volumeRatio(bars); ok {
		components["volume_ratio"] = round(ratio, 2)
		if totalScore > 0.25 || totalScore < -0.25 {
			if ratio > 1.3 {
				explanations = append(explanations, fmt.Sprintf(
					"Recent volume is %.0f%% above the 20-day average - strong participation confirms the trend.", (ratio-1)*100))
			} else if ratio < 0.7 {
				explanations = append(explanations, fmt.Sprintf(
					"Recent volume is %.0f%% below the 20-day average - weak participation, trend conviction is lower.", (1-ratio)*100))
			}
		}
	}

	score := finalScore(totalScore)

	return models.Signal{
		ID:          models.SignalTrend,
		Name:        "Price Trend & Momentum",
		Score:       score,
		Label:       directionalLabel(score),
		Explanation: strings.Join(explanations, " "),
		Components:  components,
	}
}

func aboveBelow(above bool) string {
	if above {
		return "above"
	}
	return "below"
}
