package models

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// Price is the structured form of an item's free-text price string. Currency
// is a three-letter ISO 4217 code.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (p Price) String() string {
	return fmt.Sprintf("%s %.2f", p.Currency, p.Amount)
}

// symbolCurrencies maps the currency symbols we commonly see in scraped
// prices to ISO codes.
var symbolCurrencies = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
}

// ParseAmount extracts a numeric amount from a free-text price string by
// stripping everything that is not a digit or a dot. This is the legacy
// parse used by the alert evaluator; it loses multi-currency formatting
// (e.g. "1.234,56") and callers are expected to skip rather than fail on
// ErrPriceParse.
func ParseAmount(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrPriceParse, s)
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrPriceParse, s)
	}
	return v, nil
}

// ParsePrice parses a free-text price string into its structured form. The
// currency is taken from a known symbol or an embedded ISO code; strings
// carrying no currency hint default to USD.
func ParsePrice(s string) (Price, error) {
	amount, err := ParseAmount(s)
	if err != nil {
		return Price{}, err
	}

	code := ""
	trimmed := strings.TrimSpace(s)
	for sym, c := range symbolCurrencies {
		if strings.Contains(trimmed, sym) {
			code = c
			break
		}
	}
	if code == "" {
		for _, tok := range strings.Fields(trimmed) {
			if len(tok) != 3 {
				continue
			}
			if unit, perr := currency.ParseISO(tok); perr == nil {
				code = unit.String()
				break
			}
		}
	}
	if code == "" {
		code = "USD"
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Price{}, fmt.Errorf("%w: currency %q", ErrPriceParse, code)
	}
	return Price{Amount: amount, Currency: unit.String()}, nil
}
