// Package api defines the fintrack.v1 request and response messages.
// Messages travel as JSON; amounts are decimal strings and dates are
// YYYY-MM-DD. Periods are YYYY-MM, and an empty period means the current
// month.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	CreatedAt time.Time    `json:"created_at"`
	Usage     []UsageEntry `json:"usage,omitempty"`
}

// UsageEntry is one line of a user's usage log. Only GetCurrentUser
// returns the log.
type UsageEntry struct {
	Feature string    `json:"feature"`
	At      time.Time `json:"at"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
}

type Alert struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Limit    decimal.Decimal `json:"limit"`
	Percent  decimal.Decimal `json:"percent"`
	Status   string          `json:"status"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type Summary struct {
	Period     string                     `json:"period"`
	Income     decimal.Decimal            `json:"income"`
	Expenses   decimal.Decimal            `json:"expenses"`
	Balance    decimal.Decimal            `json:"balance"`
	ByKind     map[string]decimal.Decimal `json:"by_kind"`
	ByCategory []CategoryTotal            `json:"by_category"`
	Count      int                        `json:"count"`
}

// --- AuthService ---

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Passphrase is required when the server is configured with one.
	Passphrase string `json:"passphrase,omitempty"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// --- LedgerService: categories ---

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type AddCategoryRequest struct {
	Name string `json:"name"`
}

type AddCategoryResponse struct {
	// Name is the normalized name that was stored.
	Name string `json:"name"`
}

type RenameCategoryRequest struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type RenameCategoryResponse struct{}

type RemoveCategoryRequest struct {
	Name string `json:"name"`
}

type RemoveCategoryResponse struct{}

type SuggestCategoryRequest struct {
	Text string `json:"text"`
}

type SuggestCategoryResponse struct {
	Category string `json:"category"`
	// Registered reports whether the suggestion exists in the registry.
	Registered bool `json:"registered"`
}

// --- LedgerService: transactions ---

type AddTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	// Date defaults to today.
	Date string `json:"date,omitempty"`
}

type AddTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

// EditTransactionRequest changes only the fields that are set.
type EditTransactionRequest struct {
	ID          string           `json:"id"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Kind        *string          `json:"kind,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

type EditTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct {
	Deleted bool `json:"deleted"`
}

type ListTransactionsRequest struct{}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// --- LedgerService: budgets and reports ---

type GetBudgetsRequest struct {
	Period string `json:"period,omitempty"`
}

type GetBudgetsResponse struct {
	Period  string                     `json:"period"`
	Budgets map[string]decimal.Decimal `json:"budgets"`
}

type SetBudgetsRequest struct {
	Period string `json:"period,omitempty"`
	// Budgets maps category to limit; a zero or negative limit removes it.
	Budgets map[string]decimal.Decimal `json:"budgets"`
}

type SetBudgetsResponse struct{}

type RemoveBudgetRequest struct {
	Category string `json:"category"`
	Period   string `json:"period,omitempty"`
}

type RemoveBudgetResponse struct {
	Removed bool `json:"removed"`
}

type GetAlertsRequest struct {
	Period string `json:"period,omitempty"`
}

type GetAlertsResponse struct {
	Period string  `json:"period"`
	Alerts []Alert `json:"alerts"`
}

type GetSummaryRequest struct {
	Period string `json:"period,omitempty"`
}

type GetSummaryResponse struct {
	Summary Summary `json:"summary"`
}
