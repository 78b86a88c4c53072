package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseBR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12,50", "12.5"},
		{"0,99", "0.99"},
		{"1.234,56", "1234.56"},
		{"R$ 3,00", "3"},
		{" 7,25 ", "7.25"},
		{"10", "10"},
		{"10.5", "10.5"}, // period-decimal input still accepted on read
	}
	for _, tc := range cases {
		got := ParseBR(tc.in)
		require.True(t, got.Valid, "ParseBR(%q)", tc.in)
		require.Equal(t, tc.want, got.Decimal.String(), "ParseBR(%q)", tc.in)
	}
}

func TestParseBRUnparsableIsMissingNotZero(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12,50,00", "R$"} {
		got := ParseBR(in)
		require.False(t, got.Valid, "ParseBR(%q) should be invalid", in)
	}
}

func TestFormatBR(t *testing.T) {
	require.Equal(t, "12,50", FormatBR(decimal.RequireFromString("12.5")))
	require.Equal(t, "0,00", FormatBR(decimal.Zero))
	require.Equal(t, "1234,56", FormatBR(decimal.RequireFromString("1234.56")))
}

func TestRoundTrip(t *testing.T) {
	// every non-negative value with up to 2 decimal digits survives
	// format -> parse unchanged
	for cents := int64(0); cents <= 20000; cents += 7 {
		d := decimal.New(cents, -2)
		back := ParseBR(FormatBR(d))
		require.True(t, back.Valid)
		require.True(t, d.Equal(back.Decimal), "round trip of %s gave %s", d, back.Decimal)
	}
}
