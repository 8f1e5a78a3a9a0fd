package percent

import (
	"math"
	"testing"
)

func TestPercentFormatting(t *testing.T) {
	for _, tc := range []struct {
		p    Percent
		want string
	}{
		{FromRatio(1.0701), "107.01%"},
		{Percent(86.69718), "86.70%"},
		{Percent(0), "0.00%"},
		{Percent(math.Copysign(0, -1)), "0.00%"},
		{Percent(-0.001), "0.00%"},
		{Percent(-22.81), "-22.81%"},
		{Percent(-22.81).Abs(), "22.81%"},
	} {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("expected %v to format as %s, is %s", float64(tc.p), tc.want, got)
		}
	}
	if s := Percent(12.5).Fixed(0); s != "13%" && s != "12%" {
		t.Errorf("unexpected zero-decimal formatting: %s", s)
	}
}

func TestPercentParsing(t *testing.T) {
	p, err := FromString(" 86.70% ")
	if err != nil {
		t.Fatal(err)
	}
	if p != Percent(86.70) {
		t.Errorf("expected 86.70, have %v", float64(p))
	}
	if _, err = FromString("auto"); err == nil {
		t.Errorf("expected 'auto' to be rejected")
	}
	if r := Percent(50).Ratio(); r != 0.5 {
		t.Errorf("expected ratio 0.5, have %v", r)
	}
	if p := FromFloat(math.NaN()); p != 0 {
		t.Errorf("expected NaN to be clamped to 0, have %v", float64(p))
	}
}
