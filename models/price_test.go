package models_test

import (
	"errors"
	"testing"

	"wishloop/models"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$49.99", 49.99},
		{"€20", 20},
		{"$1,299.99", 1299.99},
		{"price: 50", 50},
		{"  £15.50 ", 15.5},
		{"100", 100},
	}
	for _, tc := range cases {
		got, err := models.ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountErrors(t *testing.T) {
	for _, in := range []string{"", "call for price", "TBD", "$1.2.3"} {
		_, err := models.ParseAmount(in)
		if !errors.Is(err, models.ErrPriceParse) {
			t.Fatalf("ParseAmount(%q): expected price parse error, got %v", in, err)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in           string
		wantAmount   float64
		wantCurrency string
	}{
		{"$49.99", 49.99, "USD"},
		{"€20", 20, "EUR"},
		{"£15.50", 15.5, "GBP"},
		{"¥1000", 1000, "JPY"},
		{"20.00 GBP", 20, "GBP"},
		{"15.50", 15.5, "USD"}, // no currency hint defaults to USD
	}
	for _, tc := range cases {
		got, err := models.ParsePrice(tc.in)
		if err != nil {
			t.Fatalf("ParsePrice(%q) failed: %v", tc.in, err)
		}
		if got.Amount != tc.wantAmount || got.Currency != tc.wantCurrency {
			t.Fatalf("ParsePrice(%q) = %+v, want amount=%v currency=%s", tc.in, got, tc.wantAmount, tc.wantCurrency)
		}
	}
}

func TestParsePriceError(t *testing.T) {
	if _, err := models.ParsePrice("out of stock"); !errors.Is(err, models.ErrPriceParse) {
		t.Fatalf("expected price parse error, got %v", err)
	}
}
