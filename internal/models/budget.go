package models

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for one category.
// It is keyed uniquely by (Owner, Period, Category).
type Budget struct {
	Owner    string
	Period   Period
	Category string
	Limit    decimal.Decimal
}
