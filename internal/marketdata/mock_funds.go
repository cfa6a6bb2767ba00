package marketdata

import "github.com/ternarybob/conflux/internal/models"

// fundOrder fixes iteration order for the fund universe so overlap results
// are stable across runs.
var fundOrder = []string{
	"SMH", "SOXX", "PSI", "QQQ", "QQQM", "VOO", "VGT", "NLR", "ICLN",
	"XLV", "XBI", "IGV", "SOXL",
}

func holdingList(pairs ...interface{}) []models.Holding {
	out := make([]models.Holding, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.Holding{
			Ticker: pairs[i].(string),
			Weight: pairs[i+1].(float64),
		})
	}
	return out
}

func fundMock(ticker, name string, overview models.Overview, base, vol, trend float64,
	analyst models.AnalystSnapshot, ownership models.OwnershipActivity, risk models.RiskProfile) *MockAsset {
	overview.Ticker = ticker
	overview.Name = name
	overview.Kind = models.AssetKindFund
	return &MockAsset{
		Overview:  overview,
		Bars:      GeneratePriceHistory(ticker, base, vol, trend, 200),
		Analyst:   analyst,
		Ownership: ownership,
		Risk:      risk,
	}
}

func buildFundMocks() map[string]*MockAsset {
	return map[string]*MockAsset{
		"SMH": fundMock("SMH", "VanEck Semiconductor ETF",
			models.Overview{
				ExpenseRatio: 0.35, AUM: 22e9, PremiumDiscount: 0.001,
				TrackingError: 0.12, YTDReturn: 24.5, HoldingsCount: 26,
			},
			255, 2.6, 0.5,
			models.AnalystSnapshot{MorningstarRating: 5, CategoryRank: 6, InflowsOutflows: 3200},
			models.OwnershipActivity{
				NetFlows30D: 620e6, NetFlows90D: 1450e6, CreationRedemptionRatio: 1.35,
				TopHoldings: holdingList(
					"NVDA", 20.1, "TSM", 12.8, "AVGO", 7.9, "AMD", 4.9,
					"ASML", 4.7, "QCOM", 4.5, "AMAT", 4.4, "LRCX", 4.2,
					"MU", 3.9, "INTC", 3.4,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.35), HistoricalVolatility: floatRef(0.32),
				MaxDrawdown: floatRef(-0.28),
			}),
		"SOXX": fundMock("SOXX", "iShares Semiconductor ETF",
			models.Overview{
				ExpenseRatio: 0.35, AUM: 14e9, PremiumDiscount: 0.002,
				TrackingError: 0.15, YTDReturn: 21.8, HoldingsCount: 30,
			},
			230, 2.7, 0.45,
			models.AnalystSnapshot{MorningstarRating: 4, CategoryRank: 12, InflowsOutflows: 1800},
			models.OwnershipActivity{
				NetFlows30D: 280e6, NetFlows90D: 700e6, CreationRedemptionRatio: 1.2,
				TopHoldings: holdingList(
					"NVDA", 9.2, "AVGO", 8.6, "AMD", 7.4, "QCOM", 6.8,
					"TXN", 6.2, "AMAT", 5.9, "LRCX", 5.4, "MU", 4.8,
					"INTC", 4.5, "KLAC", 4.2,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.38), HistoricalVolatility: floatRef(0.33),
				MaxDrawdown: floatRef(-0.30),
			}),
		"PSI": fundMock("PSI", "Invesco Semiconductors ETF",
			models.Overview{
				ExpenseRatio: 0.56, AUM: 800e6, PremiumDiscount: 0.004,
				TrackingError: 0.40, YTDReturn: 18.2, HoldingsCount: 31,
			},
			58, 2.9, 0.35,
			models.AnalystSnapshot{MorningstarRating: 4, CategoryRank: 20, InflowsOutflows: 150},
			models.OwnershipActivity{
				NetFlows30D: 40e6, NetFlows90D: 90e6, CreationRedemptionRatio: 1.1,
				TopHoldings: holdingList(
					"NVDA", 6.8, "AMD", 5.9, "AVGO", 5.5, "MU", 5.1,
					"AMAT", 4.9, "LRCX", 4.6, "KLAC", 4.3, "TXN", 4.1,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.42), HistoricalVolatility: floatRef(0.35),
				MaxDrawdown: floatRef(-0.32),
			}),
		"QQQ": fundMock("QQQ", "Invesco QQQ Trust",
			models.Overview{
				ExpenseRatio: 0.20, AUM: 260e9, PremiumDiscount: 0.0005,
				TrackingError: 0.05, YTDReturn: 14.3, HoldingsCount: 101,
			},
			440, 1.7, 0.35,
			models.AnalystSnapshot{MorningstarRating: 5, CategoryRank: 15, InflowsOutflows: 8200},
			models.OwnershipActivity{
				NetFlows30D: 1800e6, NetFlows90D: 5100e6, CreationRedemptionRatio: 1.15,
				TopHoldings: holdingList(
					"AAPL", 8.9, "MSFT", 8.6, "NVDA", 8.1, "AMZN", 5.3,
					"META", 4.9, "AVGO", 4.6, "GOOGL", 4.8, "TSLA", 2.9,
					"COST", 2.5, "NFLX", 2.1,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.12), HistoricalVolatility: floatRef(0.22),
				MaxDrawdown: floatRef(-0.17),
			}),
		"QQQM": fundMock("QQQM", "Invesco NASDAQ 100 ETF",
			models.Overview{
				ExpenseRatio: 0.15, AUM: 32e9, PremiumDiscount: 0.0008,
				TrackingError: 0.06, YTDReturn: 14.2, HoldingsCount: 101,
			},
			181, 1.7, 0.35,
			models.AnalystSnapshot{MorningstarRating: 5, CategoryRank: 16, InflowsOutflows: 2600},
			models.OwnershipActivity{
				NetFlows30D: 450e6, NetFlows90D: 1300e6, CreationRedemptionRatio: 1.25,
				TopHoldings: holdingList(
					"AAPL", 8.9, "MSFT", 8.6, "NVDA", 8.1, "AMZN", 5.3,
					"META", 4.9, "AVGO", 4.6, "GOOGL", 4.8, "TSLA", 2.9,
					"COST", 2.5, "NFLX", 2.1,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.12), HistoricalVolatility: floatRef(0.22),
				MaxDrawdown: floatRef(-0.17),
			}),
		"VOO": fundMock("VOO", "Vanguard S&P 500 ETF",
			models.Overview{
				ExpenseRatio: 0.03, AUM: 480e9, PremiumDiscount: 0.0002,
				TrackingError: 0.02, YTDReturn: 11.6, HoldingsCount: 505,
			},
			505, 1.2, 0.3,
			models.AnalystSnapshot{MorningstarRating: 5, CategoryRank: 10, InflowsOutflows: 15000},
			models.OwnershipActivity{
				NetFlows30D: 4200e6, NetFlows90D: 11800e6, CreationRedemptionRatio: 1.3,
				TopHoldings: holdingList(
					"AAPL", 6.8, "MSFT", 6.5, "NVDA", 6.1, "AMZN", 3.7,
					"META", 2.4, "GOOGL", 3.5, "AVGO", 2.2, "TSLA", 1.8,
					"LLY", 1.4, "JPM", 1.3,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.0), HistoricalVolatility: floatRef(0.17),
				MaxDrawdown: floatRef(-0.13),
			}),
		"VGT": fundMock("VGT", "Vanguard Information Technology ETF",
			models.Overview{
				ExpenseRatio: 0.10, AUM: 72e9, PremiumDiscount: 0.001,
				TrackingError: 0.08, YTDReturn: 16.9, HoldingsCount: 314,
			},
			560, 1.9, 0.4,
			models.AnalystSnapshot{MorningstarRating: 4, CategoryRank: 22, InflowsOutflows: 2900},
			models.OwnershipActivity{
				NetFlows30D: 520e6, NetFlows90D: 1500e6, CreationRedemptionRatio: 1.18,
				TopHoldings: holdingList(
					"AAPL", 15.8, "MSFT", 15.1, "NVDA", 13.2, "AVGO", 4.4,
					"AMD", 1.9, "QCOM", 1.6, "TXN", 1.5, "AMAT", 1.3,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.18), HistoricalVolatility: floatRef(0.24),
				MaxDrawdown: floatRef(-0.19),
			}),
		"NLR": fundMock("NLR", "VanEck Uranium and Nuclear ETF",
			models.Overview{
				ExpenseRatio: 0.61, AUM: 1.1e9, PremiumDiscount: 0.006,
				TrackingError: 0.55, YTDReturn: 28.4, HoldingsCount: 28,
			},
			95, 2.4, 0.55,
			models.AnalystSnapshot{MorningstarRating: 4, CategoryRank: 8, InflowsOutflows: 480},
			models.OwnershipActivity{
				NetFlows30D: 120e6, NetFlows90D: 260e6, CreationRedemptionRatio: 1.4,
				TopHoldings: holdingList(
					"CEG", 8.4, "CCJ", 7.8, "PDN.AX", 6.2, "BWXT", 5.9,
					"OKLO", 5.1, "NXE", 4.7, "LEU", 4.3, "SMR", 4.0,
				),
			},
			models.RiskProfile{
				Beta: floatRef(0.95), HistoricalVolatility: floatRef(0.34),
				MaxDrawdown: floatRef(-0.26),
			}),
		"ICLN": fundMock("ICLN", "iShares Global Clean Energy ETF",
			models.Overview{
				ExpenseRatio: 0.41, AUM: 2.1e9, PremiumDiscount: -0.003,
				TrackingError: 0.48, YTDReturn: -6.2, HoldingsCount: 100,
			},
			13, 2.5, -0.15,
			models.AnalystSnapshot{MorningstarRating: 2, CategoryRank: 68, InflowsOutflows: -420},
			models.OwnershipActivity{
				NetFlows30D: -80e6, NetFlows90D: -310e6, CreationRedemptionRatio: 0.8,
				TopHoldings: holdingList(
					"FSLR", 8.1, "ENPH", 6.4, "IBDRY", 5.8, "VWS.CO", 5.2,
					"ED", 4.6, "SEDG", 3.8,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.05), HistoricalVolatility: floatRef(0.31),
				MaxDrawdown: floatRef(-0.35),
			}),
		"XLV": fundMock("XLV", "Health Care Select Sector SPDR Fund",
			models.Overview{
				ExpenseRatio: 0.09, AUM: 38e9, PremiumDiscount: 0.0004,
				TrackingError: 0.04, YTDReturn: 3.8, HoldingsCount: 63,
			},
			145, 1.3, 0.1,
			models.AnalystSnapshot{MorningstarRating: 4, CategoryRank: 30, InflowsOutflows: -600},
			models.OwnershipActivity{
				NetFlows30D: -150e6, NetFlows90D: -380e6, CreationRedemptionRatio: 0.92,
				TopHoldings: holdingList(
					"LLY", 12.1, "UNH", 8.9, "JNJ", 7.8, "ABBV", 6.4,
					"MRK", 5.6, "TMO", 4.2, "ABT", 4.0, "AMGN", 3.4,
				),
			},
			models.RiskProfile{
				Beta: floatRef(0.68), HistoricalVolatility: floatRef(0.16),
				MaxDrawdown: floatRef(-0.12),
			}),
		"XBI": fundMock("XBI", "SPDR S&P Biotech ETF",
			models.Overview{
				ExpenseRatio: 0.35, AUM: 6.5e9, PremiumDiscount: 0.002,
				TrackingError: 0.25, YTDReturn: -2.4, HoldingsCount: 135,
			},
			92, 2.8, -0.05,
			models.AnalystSnapshot{MorningstarRating: 3, CategoryRank: 52, InflowsOutflows: -250},
			models.OwnershipActivity{
				NetFlows30D: -60e6, NetFlows90D: -140e6, CreationRedemptionRatio: 0.88,
				TopHoldings: holdingList(
					"AMGN", 2.1, "GILD", 2.0, "VRTX", 1.9, "REGN", 1.8,
					"MRNA", 1.6, "BIIB", 1.5,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.25), HistoricalVolatility: floatRef(0.36),
				MaxDrawdown: floatRef(-0.33),
			}),
		"IGV": fundMock("IGV", "iShares Expanded Tech-Software Sector ETF",
			models.Overview{
				ExpenseRatio: 0.41, AUM: 9e9, PremiumDiscount: 0.001,
				TrackingError: 0.20, YTDReturn: 9.5, HoldingsCount: 118,
			},
			88, 2.1, 0.25,
			models.AnalystSnapshot{MorningstarRating: 3, CategoryRank: 40, InflowsOutflows: 300},
			models.OwnershipActivity{
				NetFlows30D: 90e6, NetFlows90D: 210e6, CreationRedemptionRatio: 1.05,
				TopHoldings: holdingList(
					"MSFT", 8.8, "CRM", 8.2, "ORCL", 7.9, "ADBE", 6.5,
					"NOW", 5.1, "INTU", 4.8,
				),
			},
			models.RiskProfile{
				Beta: floatRef(1.22), HistoricalVolatility: floatRef(0.28),
				MaxDrawdown: floatRef(-0.24),
			}),
		"SOXL": fundMock("SOXL", "Direxion Daily Semiconductor Bull 3X Shares",
			models.Overview{
				ExpenseRatio: 0.76, AUM: 11e9, PremiumDiscount: 0.003,
				TrackingError: 1.80, YTDReturn: 38.0, HoldingsCount: 32,
			},
			38, 7.5, 0.4,
			models.AnalystSnapshot{MorningstarRating: 1, CategoryRank: 90, InflowsOutflows: 900},
			models.OwnershipActivity{
				NetFlows30D: 300e6, NetFlows90D: 850e6, CreationRedemptionRatio: 1.1,
				TopHoldings: holdingList(
					"NVDA", 10.5, "AVGO", 8.0, "AMD", 7.2, "QCOM", 6.5,
					"TXN", 6.0, "MU", 4.5,
				),
			},
			models.RiskProfile{
				Beta: floatRef(4.1), HistoricalVolatility: floatRef(0.95),
				MaxDrawdown: floatRef(-0.70),
			}),
	}
}
