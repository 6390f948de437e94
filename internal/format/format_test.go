package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFmtCurrency(t *testing.T) {
	cases := []struct {
		minor    int64
		currency string
		lang     string
		want     string
	}{
		{49900, "USD", "en", "$499"},
		{169900, "usd", "en", "$1,699"},
		{169950, "USD", "sv", "$1 699,50"},
		{49950, "SEK", "sv", "499,50 kr"},
		{100000, "EUR", "en", "€1,000"},
		{100000, "EUR", "sv-SE", "1 000 €"},
		{-500, "USD", "en", "-$5"},
		{123, "NOK", "en", "NOK 1.23"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FmtCurrency(tc.minor, tc.currency, tc.lang))
	}
}

func TestDecimal(t *testing.T) {
	require.Equal(t, "499.00", Decimal(49900))
	require.Equal(t, "-0.05", Decimal(-5))
}

func TestFmtDate(t *testing.T) {
	d := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Jan 15, 2025", FmtDate(d, "en"))
	require.Equal(t, "2025-01-15", FmtDate(d, "sv"))
}
