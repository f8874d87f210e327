package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/famfin/fintrack/internal/auth"
	"github.com/famfin/fintrack/internal/calculator"
	"github.com/famfin/fintrack/internal/events"
	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
	"github.com/famfin/fintrack/internal/storage/jsonfile"
	"github.com/famfin/fintrack/internal/storage/memory"
	"github.com/famfin/fintrack/internal/storage/sqlite"
)

var march2025 = models.Period{Year: 2025, Month: time.March}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFacade(store storage.Store, publisher events.Publisher) *Facade {
	return NewFacade(store,
		WithAuthenticator(auth.NewPasswordAuthenticator(store, auth.WithCost(bcrypt.MinCost))),
		WithPublisher(publisher),
		WithLogger(quietLogger()),
	)
}

// FacadeSuite runs against a fresh in-memory store with users ana and bruno
// and categories Pets and Transporte.
type FacadeSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	recorder *events.Recorder
	facade   *Facade
}

func (s *FacadeSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.recorder = &events.Recorder{}
	s.facade = newTestFacade(s.store, s.recorder)

	for _, u := range []string{"ana", "bruno"} {
		_, err := s.facade.Register(s.ctx, u, "pw-"+u)
		s.Require().NoError(err)
	}
	for _, c := range []string{"Pets", "Transporte"} {
		_, err := s.facade.AddCategory(s.ctx, c)
		s.Require().NoError(err)
	}
}

func TestFacadeSuite(t *testing.T) {
	suite.Run(t, new(FacadeSuite))
}

func (s *FacadeSuite) add(owner, amount, category, kind string, date time.Time) *models.Transaction {
	tx, err := s.facade.AddTransaction(s.ctx, owner, models.NewTransaction{
		Amount:   dec(amount),
		Category: category,
		Kind:     kind,
		Date:     date,
	})
	s.Require().NoError(err)
	return tx
}

func (s *FacadeSuite) TestRegisterDuplicate() {
	_, err := s.facade.Register(s.ctx, "ANA", "other")
	s.ErrorIs(err, models.ErrAlreadyExists)
	s.True(s.facade.Authenticate(s.ctx, "ana", "pw-ana"))
	s.False(s.facade.Authenticate(s.ctx, "ana", "other"))
}

func (s *FacadeSuite) TestRegisterHidesHash() {
	user, err := s.facade.Register(s.ctx, "Carla", "pw")
	s.Require().NoError(err)
	s.Equal("carla", user.Username)
	s.Empty(user.PasswordHash)

	info, err := s.facade.UserInfo(s.ctx, "CARLA")
	s.Require().NoError(err)
	s.Equal(user.ID, info.ID)
	s.Empty(info.PasswordHash)

	_, err = s.facade.UserInfo(s.ctx, "nobody")
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *FacadeSuite) TestUserInfoUsageLog() {
	info, err := s.facade.UserInfo(s.ctx, "ana")
	s.Require().NoError(err)
	s.Empty(info.Usage)

	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := s.add("ana", "-10", "Pets", "Want", march)
	desc := "ração"
	_, err = s.facade.EditTransaction(s.ctx, "ana", tx.ID, models.TransactionPatch{Description: &desc})
	s.Require().NoError(err)
	s.Require().NoError(s.facade.SetBudgets(s.ctx, "ana", models.Period{Year: 2025, Month: time.March},
		map[string]decimal.Decimal{"Pets": dec("100")}))

	removed, err := s.facade.RemoveBudget(s.ctx, "ana", "Transporte", models.Period{Year: 2025, Month: time.March})
	s.Require().NoError(err)
	s.False(removed)

	deleted, err := s.facade.DeleteTransaction(s.ctx, "ana", tx.ID)
	s.Require().NoError(err)
	s.True(deleted)
	s.Require().NoError(s.facade.ChangePassword(s.ctx, "ana", "pw-ana", "new"))

	// Reads and failed writes leave no entry.
	_, err = s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	_, err = s.facade.AddTransaction(s.ctx, "ana", models.NewTransaction{Amount: dec("-1"), Category: "Nope", Kind: "Want", Date: march})
	s.ErrorIs(err, models.ErrUnknownCategory)

	info, err = s.facade.UserInfo(s.ctx, "ANA")
	s.Require().NoError(err)
	features := make([]string, 0, len(info.Usage))
	for _, u := range info.Usage {
		features = append(features, u.Feature)
		s.WithinDuration(time.Now(), u.At, time.Minute)
	}
	s.Equal([]string{
		models.FeatureAddTransaction,
		models.FeatureEditTransaction,
		models.FeatureSetBudgets,
		models.FeatureDeleteTransaction,
		models.FeatureChangePassword,
	}, features)

	other, err := s.facade.UserInfo(s.ctx, "bruno")
	s.Require().NoError(err)
	s.Empty(other.Usage)
}

func (s *FacadeSuite) TestAuthenticateIsPasswordCaseSensitive() {
	s.True(s.facade.Authenticate(s.ctx, "Ana", "pw-ana"))
	s.False(s.facade.Authenticate(s.ctx, "ana", "PW-ANA"))
	s.False(s.facade.Authenticate(s.ctx, "nobody", "pw-ana"))

	_, err := s.facade.Login(s.ctx, "ana", "wrong")
	s.ErrorIs(err, models.ErrWrongCredentials)
}

func (s *FacadeSuite) TestChangePassword() {
	s.ErrorIs(s.facade.ChangePassword(s.ctx, "ana", "bad", "new"), models.ErrWrongCredentials)
	s.ErrorIs(s.facade.ChangePassword(s.ctx, "nobody", "x", "new"), models.ErrNotFound)
	s.Require().NoError(s.facade.ChangePassword(s.ctx, "ana", "pw-ana", "new"))
	s.True(s.facade.Authenticate(s.ctx, "ana", "new"))
	s.False(s.facade.Authenticate(s.ctx, "ana", "pw-ana"))
}

func (s *FacadeSuite) TestCategories() {
	name, err := s.facade.AddCategory(s.ctx, "  alimentação ")
	s.Require().NoError(err)
	s.Equal("Alimentação", name)

	_, err = s.facade.AddCategory(s.ctx, "PETS")
	s.ErrorIs(err, models.ErrAlreadyExists)

	_, err = s.facade.AddCategory(s.ctx, "   ")
	s.ErrorIs(err, models.ErrValidation)

	cats, err := s.facade.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Pets", "Transporte", "Alimentação"}, cats)

	s.ErrorIs(s.facade.RemoveCategory(s.ctx, "Viagem"), models.ErrNotFound)
	s.Require().NoError(s.facade.RemoveCategory(s.ctx, "alimentação"))

	s.ErrorIs(s.facade.RenameCategory(s.ctx, "Viagem", "Passeios"), models.ErrNotFound)
	s.ErrorIs(s.facade.RenameCategory(s.ctx, "Pets", "transporte"), models.ErrAlreadyExists)
	s.NoError(s.facade.RenameCategory(s.ctx, "pets", "PETS"))
}

func (s *FacadeSuite) TestRemoveCategoryInUse() {
	tx := s.add("ana", "-10", "Pets", "Want", day(1))

	s.ErrorIs(s.facade.RemoveCategory(s.ctx, "Pets"), models.ErrCategoryInUse)

	deleted, err := s.facade.DeleteTransaction(s.ctx, "ana", tx.ID)
	s.Require().NoError(err)
	s.True(deleted)

	s.Require().NoError(s.facade.SetBudgets(s.ctx, "bruno", march2025, map[string]decimal.Decimal{"Pets": dec("50")}))
	s.ErrorIs(s.facade.RemoveCategory(s.ctx, "Pets"), models.ErrCategoryInUse)

	_, err = s.facade.RemoveBudget(s.ctx, "bruno", "pets", march2025)
	s.Require().NoError(err)
	s.NoError(s.facade.RemoveCategory(s.ctx, "Pets"))
}

func (s *FacadeSuite) TestRenameCategoryCascades() {
	tx := s.add("ana", "-10", "Pets", "Want", day(1))
	s.Require().NoError(s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{"Pets": dec("50")}))

	s.Require().NoError(s.facade.RenameCategory(s.ctx, "pets", "gatos"))

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(tx.ID, txs[0].ID)
	s.Equal("Gatos", txs[0].Category)

	budgets, err := s.facade.GetBudgets(s.ctx, "ana", march2025)
	s.Require().NoError(err)
	s.Contains(budgets, "Gatos")
	s.NotContains(budgets, "Pets")
}

func (s *FacadeSuite) TestAddTransaction() {
	tx := s.add("ana", "-50.00", "pets", "Want", day(10))
	s.NotEmpty(tx.ID)
	s.Equal("Pets", tx.Category)
	s.Equal(models.KindWant, tx.Kind)

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	got := txs[0]
	s.Equal(tx.ID, got.ID)
	s.True(got.Amount.Equal(dec("-50.00")))
	s.True(got.Date.Equal(day(10)))
	s.Equal("Pets", got.Category)
	s.Equal(models.KindWant, got.Kind)
}

func (s *FacadeSuite) TestAddTransactionDefaultsToToday() {
	tx, err := s.facade.AddTransaction(s.ctx, "ana", models.NewTransaction{
		Amount:      dec("3000"),
		Category:    "Transporte",
		Description: "  vale  ",
		Kind:        "receita",
	})
	s.Require().NoError(err)
	s.True(tx.Date.Equal(models.Today()), "date %v", tx.Date)
	s.Equal(models.KindIncome, tx.Kind)
	s.Equal("vale", tx.Description)
}

func (s *FacadeSuite) TestAddTransactionRejects() {
	tests := []struct {
		name    string
		owner   string
		in      models.NewTransaction
		wantErr error
	}{
		{"unknown owner", "carla", models.NewTransaction{Amount: dec("-1"), Category: "Pets", Kind: "Need"}, models.ErrNotFound},
		{"unknown category", "ana", models.NewTransaction{Amount: dec("-1"), Category: "Viagem", Kind: "Need"}, models.ErrUnknownCategory},
		{"bad kind", "ana", models.NewTransaction{Amount: dec("-1"), Category: "Pets", Kind: "Luxury"}, models.ErrValidation},
		{"zero amount", "ana", models.NewTransaction{Amount: decimal.Zero, Category: "Pets", Kind: "Need"}, models.ErrValidation},
		{"empty category", "ana", models.NewTransaction{Amount: dec("-1"), Category: " ", Kind: "Need"}, models.ErrValidation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.facade.AddTransaction(s.ctx, tt.owner, tt.in)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *FacadeSuite) TestListOrder() {
	first := s.add("ana", "-1", "Pets", "Need", day(5))
	second := s.add("ana", "-2", "Pets", "Need", day(5))
	older := s.add("ana", "-3", "Pets", "Need", day(1))
	newer := s.add("ana", "-4", "Pets", "Need", day(9))

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	var ids []string
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	s.Equal([]string{newer.ID, second.ID, first.ID, older.ID}, ids)
}

func (s *FacadeSuite) TestEditTransaction() {
	tx := s.add("ana", "-50", "Pets", "Want", day(10))

	desc := "ração"
	amount := dec("-55.90")
	kind := "necessidade"
	date := day(11)
	category := "transporte"
	edited, err := s.facade.EditTransaction(s.ctx, "ana", tx.ID, models.TransactionPatch{
		Amount:      &amount,
		Description: &desc,
		Kind:        &kind,
		Date:        &date,
		Category:    &category,
	})
	s.Require().NoError(err)
	s.Equal("Transporte", edited.Category)
	s.Equal(models.KindNeed, edited.Kind)

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.True(txs[0].Amount.Equal(amount))
	s.Equal("ração", txs[0].Description)
	s.True(txs[0].Date.Equal(date))
	s.Equal(tx.Seq, txs[0].Seq)

	s.Run("partial edit leaves other fields", func() {
		newDesc := "vet"
		_, err := s.facade.EditTransaction(s.ctx, "ana", tx.ID, models.TransactionPatch{Description: &newDesc})
		s.Require().NoError(err)
		txs, _ := s.facade.ListTransactions(s.ctx, "ana")
		s.Equal("vet", txs[0].Description)
		s.Equal("Transporte", txs[0].Category)
		s.True(txs[0].Amount.Equal(amount))
	})
}

func (s *FacadeSuite) TestEditUnknownCategoryChangesNothing() {
	tx := s.add("ana", "-50", "Pets", "Want", day(10))

	unknown := "Viagem"
	amount := dec("-1")
	_, err := s.facade.EditTransaction(s.ctx, "ana", tx.ID, models.TransactionPatch{
		Amount:   &amount,
		Category: &unknown,
	})
	s.ErrorIs(err, models.ErrUnknownCategory)

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal("Pets", txs[0].Category)
	s.True(txs[0].Amount.Equal(dec("-50")))
	s.Equal(models.KindWant, txs[0].Kind)
}

func (s *FacadeSuite) TestEditNotFound() {
	tx := s.add("ana", "-50", "Pets", "Want", day(10))
	desc := "x"

	_, err := s.facade.EditTransaction(s.ctx, "ana", "missing", models.TransactionPatch{Description: &desc})
	s.ErrorIs(err, models.ErrNotFound)

	_, err = s.facade.EditTransaction(s.ctx, "bruno", tx.ID, models.TransactionPatch{Description: &desc})
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *FacadeSuite) TestDeleteTransaction() {
	tx := s.add("ana", "-50", "Pets", "Want", day(10))
	keep := s.add("ana", "-5", "Pets", "Want", day(11))

	deleted, err := s.facade.DeleteTransaction(s.ctx, "bruno", tx.ID)
	s.Require().NoError(err)
	s.False(deleted, "another owner must not delete ana's record")

	deleted, err = s.facade.DeleteTransaction(s.ctx, "ana", tx.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.facade.DeleteTransaction(s.ctx, "ana", tx.ID)
	s.Require().NoError(err)
	s.False(deleted)

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(keep.ID, txs[0].ID)
}

func (s *FacadeSuite) TestOwnersAreIsolated() {
	s.add("ana", "-50", "Pets", "Want", day(10))

	txs, err := s.facade.ListTransactions(s.ctx, "bruno")
	s.Require().NoError(err)
	s.Empty(txs)

	_, err = s.facade.ListTransactions(s.ctx, "carla")
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *FacadeSuite) TestBudgets() {
	s.Require().NoError(s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{
		"pets":       dec("200"),
		"Transporte": dec("150"),
	}))

	budgets, err := s.facade.GetBudgets(s.ctx, "ana", march2025)
	s.Require().NoError(err)
	s.Len(budgets, 2)
	s.True(budgets["Pets"].Equal(dec("200")))

	s.Run("zero limit removes", func() {
		s.Require().NoError(s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{
			"Transporte": decimal.Zero,
			"Pets":       dec("250"),
		}))
		budgets, err := s.facade.GetBudgets(s.ctx, "ana", march2025)
		s.Require().NoError(err)
		s.Len(budgets, 1)
		s.True(budgets["Pets"].Equal(dec("250")))
	})

	s.Run("unknown category rejects whole call", func() {
		err := s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{
			"Pets":   dec("1"),
			"Viagem": dec("100"),
		})
		s.ErrorIs(err, models.ErrUnknownCategory)
		budgets, _ := s.facade.GetBudgets(s.ctx, "ana", march2025)
		s.True(budgets["Pets"].Equal(dec("250")))
	})

	s.Run("duplicate after normalization rejected", func() {
		err := s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{
			"pets": dec("1"),
			"PETS": dec("2"),
		})
		s.ErrorIs(err, models.ErrValidation)
	})

	s.Run("remove", func() {
		removed, err := s.facade.RemoveBudget(s.ctx, "ana", "PETS", march2025)
		s.Require().NoError(err)
		s.True(removed)

		removed, err = s.facade.RemoveBudget(s.ctx, "ana", "Pets", march2025)
		s.Require().NoError(err)
		s.False(removed)
	})

	s.Run("zero period means current month", func() {
		s.Require().NoError(s.facade.SetBudgets(s.ctx, "bruno", models.Period{}, map[string]decimal.Decimal{"Pets": dec("10")}))
		budgets, err := s.facade.GetBudgets(s.ctx, "bruno", models.CurrentPeriod())
		s.Require().NoError(err)
		s.Contains(budgets, "Pets")
	})
}

func (s *FacadeSuite) TestAlerts() {
	s.Require().NoError(s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{
		"Pets":       dec("100.00"),
		"Transporte": dec("100.00"),
	}))

	s.add("ana", "-79.99", "Pets", "Want", day(2))
	s.Empty(s.recorder.Alerts(), "79.99% must not alert")

	alerts, err := s.facade.GetAlerts(s.ctx, "ana", march2025)
	s.Require().NoError(err)
	s.Require().Len(alerts, 2)
	s.Equal("Pets", alerts[0].Category)
	s.Equal(calculator.StatusOK, alerts[0].Status)
	s.Equal("Transporte", alerts[1].Category)
	s.True(alerts[1].Spent.IsZero())

	s.add("ana", "-0.01", "Pets", "Want", day(3))
	alerts, err = s.facade.GetAlerts(s.ctx, "ana", march2025)
	s.Require().NoError(err)
	s.Equal(calculator.StatusWarning, alerts[0].Status)

	s.add("ana", "-20.01", "Pets", "Need", day(4))
	alerts, err = s.facade.GetAlerts(s.ctx, "ana", march2025)
	s.Require().NoError(err)
	s.Equal(calculator.StatusExceeded, alerts[0].Status)
	s.True(alerts[0].Spent.Equal(dec("100.01")))

	published := s.recorder.Alerts()
	s.Require().Len(published, 2)
	s.Equal("Warning", published[0].Status)
	s.Equal("Exceeded", published[1].Status)
	s.Equal("ana", published[1].Owner)
	s.Equal("2025-03", published[1].Period)

	s.Run("income and other months do not count", func() {
		s.add("ana", "-500", "Transporte", "Income", day(5))
		s.add("ana", "-500", "Transporte", "Need", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		alerts, err := s.facade.GetAlerts(s.ctx, "ana", march2025)
		s.Require().NoError(err)
		s.Equal(calculator.StatusOK, alerts[1].Status)
	})

	s.Run("other owners unaffected", func() {
		alerts, err := s.facade.GetAlerts(s.ctx, "bruno", march2025)
		s.Require().NoError(err)
		s.Empty(alerts)
	})
}

func (s *FacadeSuite) TestEditRaisesAlert() {
	s.Require().NoError(s.facade.SetBudgets(s.ctx, "ana", march2025, map[string]decimal.Decimal{"Pets": dec("100")}))
	tx := s.add("ana", "-10", "Pets", "Want", day(2))
	s.Empty(s.recorder.Alerts())

	amount := dec("-150")
	_, err := s.facade.EditTransaction(s.ctx, "ana", tx.ID, models.TransactionPatch{Amount: &amount})
	s.Require().NoError(err)

	published := s.recorder.Alerts()
	s.Require().Len(published, 1)
	s.Equal("Exceeded", published[0].Status)
	s.Equal("150", published[0].Spent)
}

func (s *FacadeSuite) TestSummary() {
	s.add("ana", "3000", "Transporte", "Income", day(1))
	s.add("ana", "-120.50", "Pets", "Need", day(2))

	summary, err := s.facade.GetSummary(s.ctx, "ana", march2025)
	s.Require().NoError(err)
	s.Equal(2, summary.Count)
	s.True(summary.Balance.Equal(dec("2879.50")))
}

func (s *FacadeSuite) TestSeedCategories() {
	// The registry already has entries, so seeding is skipped.
	s.Require().NoError(s.facade.SeedCategories(s.ctx, []string{"Viagem"}))
	cats, err := s.facade.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.NotContains(cats, "Viagem")

	fresh := newTestFacade(memory.New(), events.Nop{})
	s.Require().NoError(fresh.SeedCategories(s.ctx, []string{"viagem", "Viagem", "", "pets"}))
	cats, err = fresh.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Viagem", "Pets"}, cats)
}

func (s *FacadeSuite) TestConcurrentAdds() {
	const n = 25
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.facade.AddTransaction(s.ctx, "ana", models.NewTransaction{
				Amount:   decimal.NewFromInt(-int64(i + 1)),
				Category: "Pets",
				Kind:     "Need",
				Date:     day(1 + i%28),
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	txs, err := s.facade.ListTransactions(s.ctx, "ana")
	s.Require().NoError(err)
	s.Len(txs, n)
}

// failingStore reports a backend failure when listing transactions.
type failingStore struct {
	*memory.Store
}

func (failingStore) ListTransactions(context.Context, string) ([]models.Transaction, error) {
	return nil, fmt.Errorf("%w: failed to read ledger: disk on fire", models.ErrStorage)
}

func TestFacade_StorageFailureIsDistinct(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(failingStore{memory.New()}, events.Nop{})

	_, err := f.Register(ctx, "ana", "pw")
	require.NoError(t, err)

	_, err = f.ListTransactions(ctx, "ana")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.False(t, errors.Is(err, models.ErrNotFound))
}

// TestFacade_Scenario runs the household walkthrough on every backend.
func TestFacade_Scenario(t *testing.T) {
	backends := map[string]func(t *testing.T) storage.Store{
		"memory": func(t *testing.T) storage.Store { return memory.New() },
		"sqlite": func(t *testing.T) storage.Store {
			store, err := sqlite.New(filepath.Join(t.TempDir(), "fintrack.db"))
			require.NoError(t, err)
			return store
		},
		"jsonfile": func(t *testing.T) storage.Store {
			store, err := jsonfile.New(t.TempDir(), quietLogger())
			require.NoError(t, err)
			return store
		},
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			defer store.Close()
			f := newTestFacade(store, events.Nop{})

			_, err := f.Register(ctx, "ana", "pw1")
			require.NoError(t, err)

			_, err = f.Register(ctx, "Ana", "pw2")
			assert.ErrorIs(t, err, models.ErrAlreadyExists)
			assert.True(t, f.Authenticate(ctx, "ana", "pw1"))
			assert.False(t, f.Authenticate(ctx, "ana", "pw2"))
			assert.False(t, f.Authenticate(ctx, "ana", "PW1"))

			added, err := f.AddCategory(ctx, "Pets")
			require.NoError(t, err)
			assert.Equal(t, "Pets", added)

			tx, err := f.AddTransaction(ctx, "ana", models.NewTransaction{
				Amount:      dec("-50.00"),
				Category:    "pets",
				Description: "ração",
				Kind:        "Want",
			})
			require.NoError(t, err)

			txs, err := f.ListTransactions(ctx, "ana")
			require.NoError(t, err)
			require.Len(t, txs, 1)
			assert.Equal(t, tx.ID, txs[0].ID)
			assert.Equal(t, "Pets", txs[0].Category)
			assert.True(t, txs[0].Amount.Equal(dec("-50.00")))
			assert.Equal(t, "ração", txs[0].Description)
			assert.Equal(t, models.KindWant, txs[0].Kind)

			alerts, err := f.GetAlerts(ctx, "ana", models.Period{})
			require.NoError(t, err)
			for _, a := range alerts {
				assert.NotEqual(t, "Pets", a.Category)
			}

			deleted, err := f.DeleteTransaction(ctx, "ana", tx.ID)
			require.NoError(t, err)
			assert.True(t, deleted)
			deleted, err = f.DeleteTransaction(ctx, "ana", tx.ID)
			require.NoError(t, err)
			assert.False(t, deleted)

			txs, err = f.ListTransactions(ctx, "ana")
			require.NoError(t, err)
			assert.Empty(t, txs)
		})
	}
}
