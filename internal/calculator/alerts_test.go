package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		spent string
		limit string
		want  AlertStatus
	}{
		{"nothing spent", "0", "100", StatusOK},
		{"just under warning", "79.99", "100.00", StatusOK},
		{"exactly warning", "80.00", "100.00", StatusWarning},
		{"just under limit", "99.99", "100", StatusWarning},
		{"exactly limit", "100.00", "100.00", StatusExceeded},
		{"over limit", "100.01", "100.00", StatusExceeded},
		{"warning on odd limit", "0.24", "0.30", StatusWarning},
		{"below warning on odd limit", "0.23", "0.30", StatusOK},
		{"zero limit", "10", "0", StatusOK},
		{"negative limit", "10", "-5", StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(d(tt.spent), d(tt.limit)); got != tt.want {
				t.Errorf("Classify(%s, %s) = %s, want %s", tt.spent, tt.limit, got, tt.want)
			}
		})
	}
}

func TestEvaluateBudgets(t *testing.T) {
	march := models.Period{Year: 2025, Month: time.March}
	day := func(m time.Month, dd int) time.Time {
		return time.Date(2025, m, dd, 0, 0, 0, 0, time.UTC)
	}

	txs := []models.Transaction{
		{Date: day(time.March, 1), Amount: d("-50.00"), Category: "Pets", Kind: models.KindWant},
		{Date: day(time.March, 20), Amount: d("-30.00"), Category: "Pets", Kind: models.KindNeed},
		// Other month.
		{Date: day(time.April, 1), Amount: d("-500"), Category: "Pets", Kind: models.KindNeed},
		// Refund: positive amount never counts.
		{Date: day(time.March, 5), Amount: d("10"), Category: "Pets", Kind: models.KindNeed},
		// Income kind never counts, even when negative.
		{Date: day(time.March, 6), Amount: d("-40"), Category: "Pets", Kind: models.KindIncome},
		{Date: day(time.March, 7), Amount: d("-100.01"), Category: "Transporte", Kind: models.KindNeed},
		{Date: day(time.March, 8), Amount: d("-10"), Category: "Alimentação", Kind: models.KindNeed},
		// Unbudgeted category.
		{Date: day(time.March, 9), Amount: d("-999"), Category: "Extras", Kind: models.KindWant},
	}
	budgets := map[string]decimal.Decimal{
		"Pets":        d("100"),
		"Transporte":  d("100.00"),
		"Alimentação": d("200"),
		"Viagem":      d("0"),
	}

	got := EvaluateBudgets(budgets, txs, march)

	want := []struct {
		category string
		spent    string
		percent  string
		status   AlertStatus
	}{
		{"Alimentação", "10", "5", StatusOK},
		{"Pets", "80.00", "80", StatusWarning},
		{"Transporte", "100.01", "100.01", StatusExceeded},
	}
	if len(got) != len(want) {
		t.Fatalf("EvaluateBudgets returned %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		u := got[i]
		if u.Category != w.category {
			t.Errorf("entry %d category = %s, want %s", i, u.Category, w.category)
		}
		if !u.Spent.Equal(d(w.spent)) {
			t.Errorf("%s spent = %s, want %s", u.Category, u.Spent, w.spent)
		}
		if !u.Percent.Equal(d(w.percent)) {
			t.Errorf("%s percent = %s, want %s", u.Category, u.Percent, w.percent)
		}
		if u.Status != w.status {
			t.Errorf("%s status = %s, want %s", u.Category, u.Status, w.status)
		}
	}

	t.Run("no budgets yields no entries", func(t *testing.T) {
		if got := EvaluateBudgets(nil, txs, march); len(got) != 0 {
			t.Errorf("Expected no entries, got %+v", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	march := models.Period{Year: 2025, Month: time.March}
	txs := []models.Transaction{
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: d("3000"), Category: "Salário", Kind: models.KindIncome},
		{Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Amount: d("-50.50"), Category: "Pets", Kind: models.KindWant},
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Amount: d("-200"), Category: "Alimentação", Kind: models.KindNeed},
		{Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Amount: d("-20"), Category: "Pets", Kind: models.KindNeed},
		{Date: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), Amount: d("-1000"), Category: "Pets", Kind: models.KindNeed},
	}

	s := Summarize(txs, march)

	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
	if !s.Income.Equal(d("3000")) {
		t.Errorf("Income = %s, want 3000", s.Income)
	}
	if !s.Expenses.Equal(d("-270.50")) {
		t.Errorf("Expenses = %s, want -270.50", s.Expenses)
	}
	if !s.Balance.Equal(d("2729.50")) {
		t.Errorf("Balance = %s, want 2729.50", s.Balance)
	}
	if !s.ByKind[models.KindNeed].Equal(d("-220")) {
		t.Errorf("ByKind[Need] = %s, want -220", s.ByKind[models.KindNeed])
	}
	if !s.ByKind[models.KindWant].Equal(d("-50.50")) {
		t.Errorf("ByKind[Want] = %s, want -50.50", s.ByKind[models.KindWant])
	}

	wantOrder := []string{"Alimentação", "Pets", "Salário"}
	if len(s.ByCategory) != len(wantOrder) {
		t.Fatalf("ByCategory has %d entries, want %d", len(s.ByCategory), len(wantOrder))
	}
	for i, c := range wantOrder {
		if s.ByCategory[i].Category != c {
			t.Errorf("ByCategory[%d] = %s, want %s", i, s.ByCategory[i].Category, c)
		}
	}
	if !s.ByCategory[1].Total.Equal(d("-70.50")) {
		t.Errorf("Pets total = %s, want -70.50", s.ByCategory[1].Total)
	}
}
