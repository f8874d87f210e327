// Package models defines the core domain models for fintrack.
//
// # Models
//
//   - User: a persona that owns transactions and budgets
//   - Transaction: one income or expense entry in a user's ledger
//   - Budget: a spending limit for one category in one month
//   - Period: a calendar month used to scope budgets and alerts
//
// Categories are plain title-cased strings. They live in a single registry
// shared by every user, while transactions and budgets are always scoped to
// their owner's username.
//
// # Money and dates
//
// Amounts are decimal.Decimal values: expenses are negative, income is
// positive. Kind is supplied independently of the sign, so the two can
// disagree when a caller is inconsistent. Dates carry no time component and
// are kept at UTC midnight.
package models
