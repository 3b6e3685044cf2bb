package statistics

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestPassRateCI_NoCases(t *testing.T) {
	ci := PassRateCI(0, 0, 0.95)
	if ci.Lower != 0 || ci.Upper != 1 {
		t.Errorf("expected [0, 1] for no cases, got [%f, %f]", ci.Lower, ci.Upper)
	}
	if ci.Samples != 0 {
		t.Errorf("expected 0 samples, got %d", ci.Samples)
	}
}

func TestPassRateCI_KnownValue(t *testing.T) {
	ci := PassRateCI(1, 3, 0.95)
	if !approx(ci.Rate, 1.0/3) {
		t.Errorf("expected rate 1/3, got %f", ci.Rate)
	}
	if !approx(ci.Lower, 0.0615) || !approx(ci.Upper, 0.7923) {
		t.Errorf("expected ~[0.0615, 0.7923], got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestPassRateCI_Extremes(t *testing.T) {
	all := PassRateCI(10, 10, 0.95)
	if !approx(all.Upper, 1) || all.Lower >= 1 || all.Lower <= 0.5 {
		t.Errorf("unexpected interval for all passing: [%f, %f]", all.Lower, all.Upper)
	}

	none := PassRateCI(0, 10, 0.95)
	if !approx(none.Lower, 0) || none.Upper <= 0 || none.Upper >= 0.5 {
		t.Errorf("unexpected interval for none passing: [%f, %f]", none.Lower, none.Upper)
	}
}

func TestPassRateCI_ClampsPassed(t *testing.T) {
	ci := PassRateCI(12, 10, 0.95)
	if ci.Rate != 1 {
		t.Errorf("expected passed clamped to total, got rate %f", ci.Rate)
	}
}

func TestPassRateCI_NarrowsWithMoreSamples(t *testing.T) {
	small := PassRateCI(5, 10, 0.95)
	large := PassRateCI(500, 1000, 0.95)
	if large.Width() >= small.Width() {
		t.Errorf("expected narrower interval with more samples: %f vs %f", large.Width(), small.Width())
	}
}

func TestZScore(t *testing.T) {
	if z := zScore(0.95); !approx(z, 1.95996) {
		t.Errorf("expected z ~1.96 for 95%%, got %f", z)
	}
	if z := zScore(2); !approx(z, 1.95996) {
		t.Errorf("expected out-of-range level to fall back to 95%%, got %f", z)
	}
}
