package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the persisted form of transaction dates (ISO-8601 date).
const DateLayout = "2006-01-02"

// Kind classifies a transaction independently of its monetary sign.
type Kind string

const (
	KindNeed   Kind = "Need"
	KindWant   Kind = "Want"
	KindIncome Kind = "Income"
)

// kindAliases maps lower-cased input to a Kind. The Portuguese labels are
// what the chat bot and the dashboard have always sent.
var kindAliases = map[string]Kind{
	"need":        KindNeed,
	"necessidade": KindNeed,
	"want":        KindWant,
	"desejo":      KindWant,
	"income":      KindIncome,
	"receita":     KindIncome,
}

// ParseKind parses a kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown kind %q, expected Need, Want or Income", ErrValidation, s)
}

// Transaction is one entry in a user's ledger.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Owner is the username the transaction belongs to.
	Owner string

	// Date is a calendar date at UTC midnight.
	Date time.Time

	// Amount is positive for income and negative for expenses.
	Amount decimal.Decimal

	// Category references a registry entry by its title-cased name.
	Category string

	// Description is free text and may be empty.
	Description string

	Kind Kind

	// Seq orders transactions that share a date; larger means recorded later.
	Seq int64
}

// IsExpense reports whether the transaction counts against a budget.
func (t Transaction) IsExpense() bool {
	return t.Kind != KindIncome && t.Amount.IsNegative()
}

// NewTransaction holds the caller-supplied fields of a transaction to add.
// A zero Date means today.
type NewTransaction struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Kind        string
	Date        time.Time
}

// TransactionPatch holds the fields to change in an edit.
// Nil fields are left unchanged.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Kind        *string
	Date        *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil && p.Kind == nil && p.Date == nil
}

// CalendarDate truncates t to a date at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return CalendarDate(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}

// SortTransactions orders transactions most recent first: by date
// descending, then by Seq descending.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].Seq > txs[j].Seq
	})
}
