package extract

import "testing"

func TestParseBailAmount(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"blank", "   ", 0},
		{"hold without bail", "HOLD WITHOUT BAIL", NoBailAmount},
		{"no bail lowercase", "no bail", NoBailAmount},
		{"dollar amount", "$1,250.00", 1250.00},
		{"amount with label", "Bail set at $50,000", 50000},
		{"released", "RELEASED", 0},
		{"released mixed case", "Released on recognizance", 0},
		{"no bail information", "NO BAIL INFORMATION", 0},
		{"garbage", "garbage", 0},
		{"plain number without marker", "2500", 0},
		{"decimal without cents", "$300.", 300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseBailAmount(tc.text); got != tc.want {
				t.Fatalf("ParseBailAmount(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseBailAmountTakesFirstCurrencyMatch(t *testing.T) {
	if got := ParseBailAmount("$2,500.00 / $250.00 conditional"); got != 2500 {
		t.Fatalf("expected first match to win, got %v", got)
	}
}
