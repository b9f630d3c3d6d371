package services

import (
	"time"

	"bank-api/models"
)

// SeedAccounts returns the demo account set. Dates are offsets from now so
// the relative labels ("Today", "Yesterday", "N days ago", calendar date)
// all show up on a fresh start.
func SeedAccounts() []*models.Account {
	now := time.Now()
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	return []*models.Account{
		{
			Owner:        "Miles Harrington",
			PIN:          1111,
			InterestRate: 1.2,
			Locale:       "pt-PT",
			Currency:     "EUR",
			Movements:    []float64{200, 455.23, -306.5, 25000, -642.21, -133.9, 79.97, 1300},
			MovementsDates: []time.Time{
				days(540), days(300), days(120), days(30),
				days(8), days(3), days(1), days(0),
			},
		},
		{
			Owner:        "Amara Velasquez Cruz",
			PIN:          2222,
			InterestRate: 1.5,
			Locale:       "en-US",
			Currency:     "USD",
			Movements:    []float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30},
			MovementsDates: []time.Time{
				days(600), days(410), days(250), days(160),
				days(90), days(40), days(12), days(2),
			},
		},
		{
			Owner:        "Ethan Ward Ross",
			PIN:          3333,
			InterestRate: 0.7,
			Locale:       "en-GB",
			Currency:     "GBP",
			Movements:    []float64{200, -200, 340, -300, -20, 50, 400, -460},
			MovementsDates: []time.Time{
				days(700), days(520), days(350), days(200),
				days(110), days(60), days(20), days(5),
			},
		},
		{
			Owner:        "Sofia Lindqvist",
			PIN:          4444,
			InterestRate: 1,
			Locale:       "sv-SE",
			Currency:     "EUR",
			Movements:    []float64{430, 1000, 700, 50, 90},
			MovementsDates: []time.Time{
				days(320), days(180), days(75), days(14), days(1),
			},
		},
	}
}
