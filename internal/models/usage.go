package models

import "time"

// Features recorded in a user's usage log.
const (
	FeatureChangePassword    = "change_password"
	FeatureAddTransaction    = "add_transaction"
	FeatureEditTransaction   = "edit_transaction"
	FeatureDeleteTransaction = "delete_transaction"
	FeatureSetBudgets        = "set_budgets"
	FeatureRemoveBudget      = "remove_budget"
)

// UsageEntry is one line of a user's usage log.
type UsageEntry struct {
	Feature string
	At      time.Time
}
