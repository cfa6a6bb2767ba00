package marketdata

import (
	"testing"
	"time"
)

func TestGeneratePriceHistory_Deterministic(t *testing.T) {
	a := GeneratePriceHistory("AAPL", 182, 1.5, 0.3, 200)
	b := GeneratePriceHistory("AAPL", 182, 1.5, 0.3, 200)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Close != b[i].Close || !a[i].Date.Equal(b[i].Date) {
			t.Fatalf("series diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGeneratePriceHistory_DifferentTickersDiffer(t *testing.T) {
	a := GeneratePriceHistory("AAPL", 100, 1.5, 0.3, 200)
	b := GeneratePriceHistory("MSFT", 100, 1.5, 0.3, 200)

	same := true
	for i := range a {
		if i < len(b) && a[i].Close != b[i].Close {
			same = false
			break
		}
	}
	if same {
		t.Error("different tickers should produce different walks")
	}
}

func TestGeneratePriceHistory_SkipsWeekends(t *testing.T) {
	bars := GeneratePriceHistory("SMH", 255, 2.6, 0.5, 200)

	if len(bars) == 0 {
		t.Fatal("no bars generated")
	}
	for _, b := range bars {
		if wd := b.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("bar on a weekend: %s", b.Date.Format("2006-01-02"))
		}
	}
	// 200 calendar days minus weekends
	if len(bars) < 130 || len(bars) > 150 {
		t.Errorf("bar count = %d, want roughly 140 trading days", len(bars))
	}
}

func TestGeneratePriceHistory_PositivePrices(t *testing.T) {
	bars := GeneratePriceHistory("TSLA", 245, 3.5, -0.1, 200)
	for _, b := range bars {
		if b.Close <= 0 || b.Low <= 0 {
			t.Fatalf("non-positive price in walk: %+v", b)
		}
	}
}

func TestMockCatalog_Lookups(t *testing.T) {
	catalog := NewMockCatalog()

	if _, ok := catalog.Stock("AAPL"); !ok {
		t.Error("AAPL should be in the stock catalog")
	}
	if _, ok := catalog.Fund("SMH"); !ok {
		t.Error("SMH should be in the fund catalog")
	}
	if _, ok := catalog.Stock("SMH"); ok {
		t.Error("SMH should not be in the stock catalog")
	}
	if !catalog.IsFund("qqq") {
		t.Error("IsFund should be case-insensitive")
	}

	asset := catalog.GenericFund("chpx")
	if asset.Overview.Ticker != "CHPX" {
		t.Errorf("GenericFund ticker = %v, want CHPX", asset.Overview.Ticker)
	}
	if len(asset.Bars) == 0 {
		t.Error("GenericFund should carry a price history")
	}
}
