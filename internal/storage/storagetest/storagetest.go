// Package storagetest holds the behaviour every storage.Store backend must
// share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
)

// Factory returns a fresh, empty store. Run closes it.
type Factory func(t *testing.T) storage.Store

// Run exercises a backend against the storage.Store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, newStore) })
	t.Run("Budgets", func(t *testing.T) { testBudgets(t, newStore) })
	t.Run("RenameCascades", func(t *testing.T) { testRenameCascades(t, newStore) })
}

func open(t *testing.T, newStore Factory) storage.Store {
	t.Helper()
	store := newStore(t)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTx(owner, day, amount, category string) *models.Transaction {
	return &models.Transaction{
		ID:       uuid.New().String(),
		Owner:    owner,
		Date:     date(day),
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Kind:     models.KindNeed,
	}
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := open(t, newStore)

	user := models.NewUser("ana", "hash-1")
	require.NoError(t, store.CreateUser(ctx, user))

	t.Run("get returns stored user", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hash-1", got.PasswordHash)
		assert.WithinDuration(t, user.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("missing user is nil without error", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("ana", "hash-2"))
		assert.ErrorIs(t, err, models.ErrAlreadyExists)

		got, err := store.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		assert.Equal(t, "hash-1", got.PasswordHash)
	})

	t.Run("update password hash", func(t *testing.T) {
		require.NoError(t, store.UpdatePasswordHash(ctx, "ana", "hash-3"))
		got, err := store.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		assert.Equal(t, "hash-3", got.PasswordHash)

		err = store.UpdatePasswordHash(ctx, "nobody", "x")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("usage log", func(t *testing.T) {
		entries, err := store.ListUsage(ctx, "ana")
		require.NoError(t, err)
		assert.Empty(t, entries)

		at := time.Date(2025, 3, 10, 14, 30, 5, 0, time.UTC)
		require.NoError(t, store.RecordUsage(ctx, "ana", models.UsageEntry{Feature: models.FeatureAddTransaction, At: at}))
		require.NoError(t, store.RecordUsage(ctx, "ana", models.UsageEntry{Feature: models.FeatureSetBudgets, At: at.Add(time.Minute)}))
		require.NoError(t, store.RecordUsage(ctx, "bruno", models.UsageEntry{Feature: models.FeatureRemoveBudget, At: at}))

		entries, err = store.ListUsage(ctx, "ana")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, models.FeatureAddTransaction, entries[0].Feature)
		assert.True(t, entries[0].At.Equal(at))
		assert.Equal(t, models.FeatureSetBudgets, entries[1].Feature)
		assert.True(t, entries[1].At.Equal(at.Add(time.Minute)))
	})
}

func testCategories(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := open(t, newStore)

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	for _, name := range []string{"Transporte", "Alimentação", "Pets"} {
		require.NoError(t, store.AddCategory(ctx, name))
	}

	t.Run("insertion order preserved", func(t *testing.T) {
		cats, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Transporte", "Alimentação", "Pets"}, cats)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.AddCategory(ctx, "Pets"), models.ErrAlreadyExists)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.RemoveCategory(ctx, "Alimentação"))
		cats, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Transporte", "Pets"}, cats)

		assert.ErrorIs(t, store.RemoveCategory(ctx, "Alimentação"), models.ErrNotFound)
	})

	t.Run("in use", func(t *testing.T) {
		inUse, err := store.CategoryInUse(ctx, "Pets")
		require.NoError(t, err)
		assert.False(t, inUse)

		require.NoError(t, store.CreateTransaction(ctx, newTx("ana", "2025-03-01", "-10", "Pets")))
		inUse, err = store.CategoryInUse(ctx, "Pets")
		require.NoError(t, err)
		assert.True(t, inUse)

		period := models.Period{Year: 2025, Month: time.March}
		require.NoError(t, store.UpsertBudgets(ctx, "bruno", period, map[string]decimal.Decimal{
			"Transporte": decimal.NewFromInt(100),
		}))
		inUse, err = store.CategoryInUse(ctx, "Transporte")
		require.NoError(t, err)
		assert.True(t, inUse)
	})

	t.Run("remove refused while referenced", func(t *testing.T) {
		assert.ErrorIs(t, store.RemoveCategory(ctx, "Pets"), models.ErrCategoryInUse)
		assert.ErrorIs(t, store.RemoveCategory(ctx, "Transporte"), models.ErrCategoryInUse)

		cats, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Transporte", "Pets"}, cats)
	})

	t.Run("rename errors", func(t *testing.T) {
		assert.ErrorIs(t, store.RenameCategory(ctx, "Nope", "Other"), models.ErrNotFound)
		assert.ErrorIs(t, store.RenameCategory(ctx, "Pets", "Transporte"), models.ErrAlreadyExists)
	})
}

func testTransactions(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := open(t, newStore)

	first := newTx("ana", "2025-03-10", "-50.00", "Pets")
	second := newTx("ana", "2025-03-12", "-20.5", "Pets")
	third := newTx("ana", "2025-03-10", "3000", "Salário")
	third.Kind = models.KindIncome
	third.Description = "março"
	other := newTx("bruno", "2025-03-11", "-7", "Pets")

	for _, tx := range []*models.Transaction{first, second, third, other} {
		require.NoError(t, store.CreateTransaction(ctx, tx))
		assert.NotZero(t, tx.Seq)
	}
	assert.Greater(t, third.Seq, first.Seq)

	t.Run("list ordered by date then recency", func(t *testing.T) {
		txs, err := store.ListTransactions(ctx, "ana")
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, second.ID, txs[0].ID)
		assert.Equal(t, third.ID, txs[1].ID)
		assert.Equal(t, first.ID, txs[2].ID)
	})

	t.Run("fields round trip", func(t *testing.T) {
		got, err := store.GetTransaction(ctx, "ana", third.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ana", got.Owner)
		assert.True(t, got.Date.Equal(third.Date), "date: got %v want %v", got.Date, third.Date)
		assert.True(t, got.Amount.Equal(third.Amount), "amount: got %s want %s", got.Amount, third.Amount)
		assert.Equal(t, "Salário", got.Category)
		assert.Equal(t, "março", got.Description)
		assert.Equal(t, models.KindIncome, got.Kind)
		assert.Equal(t, third.Seq, got.Seq)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		got, err := store.GetTransaction(ctx, "bruno", first.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		deleted, err := store.DeleteTransaction(ctx, "bruno", first.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		txs, err := store.ListTransactions(ctx, "bruno")
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, other.ID, txs[0].ID)

		moved := *first
		moved.Owner = "bruno"
		assert.ErrorIs(t, store.UpdateTransaction(ctx, &moved), models.ErrNotFound)
	})

	t.Run("unknown owner lists empty", func(t *testing.T) {
		txs, err := store.ListTransactions(ctx, "carla")
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("update keeps seq", func(t *testing.T) {
		edited := *first
		edited.Amount = decimal.RequireFromString("-55.25")
		edited.Description = "vet"
		edited.Seq = 0
		require.NoError(t, store.UpdateTransaction(ctx, &edited))

		got, err := store.GetTransaction(ctx, "ana", first.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("-55.25")))
		assert.Equal(t, "vet", got.Description)
		assert.Equal(t, first.Seq, got.Seq)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := store.DeleteTransaction(ctx, "ana", second.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.DeleteTransaction(ctx, "ana", second.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		txs, err := store.ListTransactions(ctx, "ana")
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})
}

func testBudgets(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := open(t, newStore)

	march := models.Period{Year: 2025, Month: time.March}
	april := models.Period{Year: 2025, Month: time.April}

	got, err := store.GetBudgets(ctx, "ana", march)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.UpsertBudgets(ctx, "ana", march, map[string]decimal.Decimal{
		"Pets":       decimal.NewFromInt(200),
		"Transporte": decimal.RequireFromString("150.50"),
	}))
	require.NoError(t, store.UpsertBudgets(ctx, "ana", march, map[string]decimal.Decimal{
		"Pets": decimal.NewFromInt(250),
	}))

	t.Run("upsert overwrites per category", func(t *testing.T) {
		got, err := store.GetBudgets(ctx, "ana", march)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got["Pets"].Equal(decimal.NewFromInt(250)))
		assert.True(t, got["Transporte"].Equal(decimal.RequireFromString("150.5")))
	})

	t.Run("scoped by period and owner", func(t *testing.T) {
		got, err := store.GetBudgets(ctx, "ana", april)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = store.GetBudgets(ctx, "bruno", march)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := store.DeleteBudget(ctx, "ana", march, "Pets")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.DeleteBudget(ctx, "ana", march, "Pets")
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := store.GetBudgets(ctx, "ana", march)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func testRenameCascades(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := open(t, newStore)
	period := models.Period{Year: 2025, Month: time.March}

	require.NoError(t, store.AddCategory(ctx, "Pets"))
	require.NoError(t, store.AddCategory(ctx, "Mercado"))

	anaTx := newTx("ana", "2025-03-01", "-30", "Pets")
	brunoTx := newTx("bruno", "2025-03-02", "-40", "Pets")
	keep := newTx("ana", "2025-03-03", "-5", "Mercado")
	for _, tx := range []*models.Transaction{anaTx, brunoTx, keep} {
		require.NoError(t, store.CreateTransaction(ctx, tx))
	}
	require.NoError(t, store.UpsertBudgets(ctx, "ana", period, map[string]decimal.Decimal{
		"Pets":    decimal.NewFromInt(100),
		"Mercado": decimal.NewFromInt(500),
	}))

	require.NoError(t, store.RenameCategory(ctx, "Pets", "Gatos"))

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gatos", "Mercado"}, cats)

	for _, tx := range []*models.Transaction{anaTx, brunoTx} {
		got, err := store.GetTransaction(ctx, tx.Owner, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gatos", got.Category)
	}
	got, err := store.GetTransaction(ctx, "ana", keep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mercado", got.Category)

	budgets, err := store.GetBudgets(ctx, "ana", period)
	require.NoError(t, err)
	assert.True(t, budgets["Gatos"].Equal(decimal.NewFromInt(100)))
	_, stale := budgets["Pets"]
	assert.False(t, stale)

	inUse, err := store.CategoryInUse(ctx, "Pets")
	require.NoError(t, err)
	assert.False(t, inUse)
}
