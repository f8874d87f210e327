package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/auth"
	"github.com/famfin/fintrack/internal/calculator"
	"github.com/famfin/fintrack/internal/events"
	"github.com/famfin/fintrack/internal/metrics"
	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
)

// Facade is the single entry point to the ledger. It composes the credential
// store, category registry, ledger and budget book, and checks that every
// owner-scoped call names a registered user.
//
// Failures are returned as errors wrapping the sentinels in models; test them
// with errors.Is. Backend failures wrap models.ErrStorage so callers can tell
// "try again" apart from "invalid input".
type Facade struct {
	users         storage.UserStore
	authenticator auth.Authenticator
	categories    *CategoryRegistry
	ledger        *Ledger
	budgets       *BudgetBook
	publisher     events.Publisher
	logger        *slog.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithPublisher sets where budget alerts are sent. The default drops them.
func WithPublisher(p events.Publisher) Option {
	return func(f *Facade) {
		f.publisher = p
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Facade) {
		f.logger = l
	}
}

// WithAuthenticator replaces the default bcrypt authenticator.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(f *Facade) {
		f.authenticator = a
	}
}

// NewFacade wires the components over one shared store.
func NewFacade(store storage.Store, opts ...Option) *Facade {
	categories := NewCategoryRegistry(store)
	f := &Facade{
		users:      store,
		categories: categories,
		ledger:     NewLedger(store, categories),
		budgets:    NewBudgetBook(store, categories),
		publisher:  events.Nop{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.authenticator == nil {
		f.authenticator = auth.NewPasswordAuthenticator(store)
	}
	return f
}

// --- Credentials ---

// Register creates a persona. The returned user carries no password hash.
func (f *Facade) Register(ctx context.Context, username, password string) (*models.User, error) {
	user, err := f.authenticator.Register(ctx, username, password)
	if err != nil {
		return nil, f.fail("register", err)
	}
	f.logger.InfoContext(ctx, "User registered", "username", user.Username)
	return publicUser(user), nil
}

// Login returns the user if the password matches, or models.ErrWrongCredentials.
func (f *Facade) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := f.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return nil, f.fail("authenticate", err)
	}
	return publicUser(user), nil
}

// Authenticate reports whether the password matches. Usernames compare
// case-insensitively; passwords do not.
func (f *Facade) Authenticate(ctx context.Context, username, password string) bool {
	_, err := f.Login(ctx, username, password)
	return err == nil
}

// ChangePassword replaces the password once the old one verifies.
func (f *Facade) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if err := f.authenticator.ChangeCredential(ctx, username, oldPassword, newPassword); err != nil {
		return f.fail("change_password", err)
	}
	f.logger.InfoContext(ctx, "Password changed", "username", models.NormalizeUsername(username))
	f.recordUsage(ctx, models.NormalizeUsername(username), models.FeatureChangePassword)
	return nil
}

// UserInfo returns the registered user, with its usage log and without the
// password hash.
func (f *Facade) UserInfo(ctx context.Context, username string) (*models.User, error) {
	user, err := f.users.GetUserByUsername(ctx, models.NormalizeUsername(username))
	if err != nil {
		return nil, f.fail("get_user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", models.ErrNotFound, models.NormalizeUsername(username))
	}

	usage, err := f.users.ListUsage(ctx, user.Username)
	if err != nil {
		return nil, f.fail("list_usage", err)
	}
	info := publicUser(user)
	info.Usage = usage
	return info, nil
}

// --- Categories ---

func (f *Facade) ListCategories(ctx context.Context) ([]string, error) {
	names, err := f.categories.List(ctx)
	if err != nil {
		return nil, f.fail("list_categories", err)
	}
	return names, nil
}

// AddCategory returns the normalized name that was stored.
func (f *Facade) AddCategory(ctx context.Context, name string) (string, error) {
	normalized, err := f.categories.Add(ctx, name)
	if err != nil {
		return "", f.fail("add_category", err)
	}
	f.logger.InfoContext(ctx, "Category added", "category", normalized)
	return normalized, nil
}

// RenameCategory renames a category and every reference to it.
func (f *Facade) RenameCategory(ctx context.Context, oldName, newName string) error {
	if err := f.categories.Rename(ctx, oldName, newName); err != nil {
		return f.fail("rename_category", err)
	}
	f.logger.InfoContext(ctx, "Category renamed",
		"from", models.NormalizeCategory(oldName),
		"to", models.NormalizeCategory(newName))
	return nil
}

// RemoveCategory fails with models.ErrCategoryInUse while any transaction or
// budget still references the category.
func (f *Facade) RemoveCategory(ctx context.Context, name string) error {
	if err := f.categories.Remove(ctx, name); err != nil {
		return f.fail("remove_category", err)
	}
	f.logger.InfoContext(ctx, "Category removed", "category", models.NormalizeCategory(name))
	return nil
}

// SeedCategories fills an empty registry with names.
func (f *Facade) SeedCategories(ctx context.Context, names []string) error {
	added, err := f.categories.Seed(ctx, names)
	if err != nil {
		return f.fail("seed_categories", err)
	}
	if added > 0 {
		f.logger.InfoContext(ctx, "Categories seeded", "count", added)
	}
	return nil
}

// --- Transactions ---

// AddTransaction records a transaction for owner. The category is matched
// after title-casing, so "pets" records under "Pets".
func (f *Facade) AddTransaction(ctx context.Context, owner string, in models.NewTransaction) (*models.Transaction, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	tx, err := f.ledger.Add(ctx, owner, in)
	if err != nil {
		return nil, f.fail("add_transaction", err)
	}

	metrics.TransactionRecorded(string(tx.Kind))
	f.logger.InfoContext(ctx, "Transaction added",
		"owner", owner,
		"id", tx.ID,
		"category", tx.Category,
		"amount", tx.Amount.String(),
		"kind", tx.Kind)

	f.recordUsage(ctx, owner, models.FeatureAddTransaction)
	f.checkBudget(ctx, owner, tx.Category, models.PeriodOf(tx.Date))
	return tx, nil
}

// EditTransaction changes the supplied fields of one of owner's
// transactions and returns the stored result.
func (f *Facade) EditTransaction(ctx context.Context, owner, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	tx, err := f.ledger.Edit(ctx, owner, id, patch)
	if err != nil {
		return nil, f.fail("edit_transaction", err)
	}

	f.logger.InfoContext(ctx, "Transaction edited", "owner", owner, "id", id)
	f.recordUsage(ctx, owner, models.FeatureEditTransaction)
	if !patch.IsEmpty() {
		f.checkBudget(ctx, owner, tx.Category, models.PeriodOf(tx.Date))
	}
	return tx, nil
}

// DeleteTransaction reports whether a transaction was removed.
func (f *Facade) DeleteTransaction(ctx context.Context, owner, id string) (bool, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return false, err
	}

	deleted, err := f.ledger.Delete(ctx, owner, id)
	if err != nil {
		return false, f.fail("delete_transaction", err)
	}
	if deleted {
		f.logger.InfoContext(ctx, "Transaction deleted", "owner", owner, "id", id)
		f.recordUsage(ctx, owner, models.FeatureDeleteTransaction)
	}
	return deleted, nil
}

func (f *Facade) ListTransactions(ctx context.Context, owner string) ([]models.Transaction, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	txs, err := f.ledger.List(ctx, owner)
	if err != nil {
		return nil, f.fail("list_transactions", err)
	}
	return txs, nil
}

// --- Budgets ---

func (f *Facade) GetBudgets(ctx context.Context, owner string, period models.Period) (map[string]decimal.Decimal, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	budgets, err := f.budgets.Get(ctx, owner, period)
	if err != nil {
		return nil, f.fail("get_budgets", err)
	}
	return budgets, nil
}

// SetBudgets upserts positive limits and removes categories given a zero or
// negative limit.
func (f *Facade) SetBudgets(ctx context.Context, owner string, period models.Period, limits map[string]decimal.Decimal) error {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return err
	}

	if err := f.budgets.SetMany(ctx, owner, period, limits); err != nil {
		return f.fail("set_budgets", err)
	}
	f.logger.InfoContext(ctx, "Budgets set", "owner", owner, "period", period.OrCurrent().String(), "count", len(limits))
	f.recordUsage(ctx, owner, models.FeatureSetBudgets)
	return nil
}

// RemoveBudget reports whether a budget existed and was removed.
func (f *Facade) RemoveBudget(ctx context.Context, owner, category string, period models.Period) (bool, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return false, err
	}

	removed, err := f.budgets.Remove(ctx, owner, category, period)
	if err != nil {
		return false, f.fail("remove_budget", err)
	}
	if removed {
		f.recordUsage(ctx, owner, models.FeatureRemoveBudget)
	}
	return removed, nil
}

// --- Read side ---

// GetAlerts returns the utilization of every budgeted category in period,
// sorted by category. Entries with status OK are included; categories
// without a budget never appear. Nothing is cached.
func (f *Facade) GetAlerts(ctx context.Context, owner string, period models.Period) ([]calculator.Utilization, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return nil, err
	}
	period = period.OrCurrent()

	budgets, err := f.budgets.Get(ctx, owner, period)
	if err != nil {
		return nil, f.fail("get_budgets", err)
	}
	if len(budgets) == 0 {
		return []calculator.Utilization{}, nil
	}

	txs, err := f.ledger.List(ctx, owner)
	if err != nil {
		return nil, f.fail("list_transactions", err)
	}
	return calculator.EvaluateBudgets(budgets, txs, period), nil
}

// GetSummary totals owner's transactions in period.
func (f *Facade) GetSummary(ctx context.Context, owner string, period models.Period) (calculator.Summary, error) {
	owner, err := f.requireUser(ctx, owner)
	if err != nil {
		return calculator.Summary{}, err
	}

	txs, err := f.ledger.List(ctx, owner)
	if err != nil {
		return calculator.Summary{}, f.fail("list_transactions", err)
	}
	return calculator.Summarize(txs, period.OrCurrent()), nil
}

// checkBudget publishes an alert when category is at or above the warning
// threshold in period. The write that triggered it has already succeeded,
// so failures are logged and not returned.
func (f *Facade) checkBudget(ctx context.Context, owner, category string, period models.Period) {
	budgets, err := f.budgets.Get(ctx, owner, period)
	if err != nil {
		f.logger.WarnContext(ctx, "Budget check skipped", "owner", owner, "error", err)
		return
	}
	limit, ok := budgets[category]
	if !ok {
		return
	}

	txs, err := f.ledger.List(ctx, owner)
	if err != nil {
		f.logger.WarnContext(ctx, "Budget check skipped", "owner", owner, "error", err)
		return
	}

	for _, u := range calculator.EvaluateBudgets(map[string]decimal.Decimal{category: limit}, txs, period) {
		if !u.Status.Alerting() {
			continue
		}
		metrics.BudgetAlertRaised(string(u.Status))
		alert := events.BudgetAlert{
			Owner:    owner,
			Category: u.Category,
			Period:   period.String(),
			Spent:    u.Spent.String(),
			Limit:    u.Limit.String(),
			Percent:  u.Percent.String(),
			Status:   string(u.Status),
		}
		if err := f.publisher.PublishBudgetAlert(ctx, alert); err != nil {
			f.logger.WarnContext(ctx, "Failed to publish budget alert",
				"owner", owner, "category", u.Category, "error", err)
		}
	}
}

// recordUsage appends feature to owner's usage log. The operation being
// recorded has already succeeded, so failures are logged and not returned.
func (f *Facade) recordUsage(ctx context.Context, owner, feature string) {
	entry := models.UsageEntry{Feature: feature, At: time.Now().UTC().Truncate(time.Second)}
	if err := f.users.RecordUsage(ctx, owner, entry); err != nil {
		metrics.StorageError("record_usage")
		f.logger.WarnContext(ctx, "Failed to record usage", "owner", owner, "feature", feature, "error", err)
	}
}

// requireUser normalizes owner and checks that it is registered.
func (f *Facade) requireUser(ctx context.Context, owner string) (string, error) {
	owner = models.NormalizeUsername(owner)
	user, err := f.users.GetUserByUsername(ctx, owner)
	if err != nil {
		return "", f.fail("get_user", err)
	}
	if user == nil {
		return "", fmt.Errorf("%w: user %q", models.ErrNotFound, owner)
	}
	return owner, nil
}

// fail records backend failures before handing err back.
func (f *Facade) fail(op string, err error) error {
	if errors.Is(err, models.ErrStorage) {
		metrics.StorageError(op)
		f.logger.Error("Storage failure", "operation", op, "error", err)
	}
	return err
}

func publicUser(u *models.User) *models.User {
	c := *u
	c.PasswordHash = ""
	return &c
}
