package utils

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display-only formatting. The core's arithmetic never touches these
// functions; they exist to hand the UI ready-to-render strings in the
// account's own locale and currency.

// FormatCurrency renders an amount with its currency symbol using the
// account's locale conventions. Unknown locales fall back to English,
// unknown currency codes to a bare number.
func FormatCurrency(value float64, locale, code string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%.2f", value)
	}
	return p.Sprintf("%v", currency.Symbol(unit.Amount(value)))
}

// DateFormatter returns the calendar-date formatter for a locale, used for
// movements older than a week. US-style locales get month-first ordering.
func DateFormatter(locale string) func(time.Time) string {
	layout := "02/01/2006"
	if tag, err := language.Parse(locale); err == nil {
		if region, _ := tag.Region(); region.String() == "US" {
			layout = "1/2/2006"
		}
	}
	return func(t time.Time) string {
		return t.Format(layout)
	}
}

// FormatLoginTimestamp renders the "as of" line shown next to the balance.
func FormatLoginTimestamp(t time.Time, locale string) string {
	layout := "02/01/2006, 15:04"
	if tag, err := language.Parse(locale); err == nil {
		if region, _ := tag.Region(); region.String() == "US" {
			layout = "1/2/2006, 3:04 PM"
		}
	}
	return t.Format(layout)
}
