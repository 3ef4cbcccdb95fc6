package amount

import "testing"

func TestDisplayScalesByDecimals(t *testing.T) {
	cases := []struct {
		raw      uint64
		decimals uint8
		want     string
	}{
		{raw: 1_000_000_000, decimals: 9, want: "1.00"},
		{raw: 40_000_000, decimals: 6, want: "40.00"},
		{raw: 0, decimals: 9, want: "0.00"},
	}
	for _, c := range cases {
		if got := Display(c.raw, c.decimals, 2); got != c.want {
			t.Fatalf("Display(%d, %d, 2) = %s, want %s", c.raw, c.decimals, got, c.want)
		}
	}
}
