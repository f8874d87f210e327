package service

import (
	"context"
	"log/slog"
	"slices"

	"connectrpc.com/connect"

	"github.com/famfin/fintrack/internal/classify"
	"github.com/famfin/fintrack/internal/ledger"
	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/pkg/api"
)

// LedgerService implements the LedgerService RPC interface. Every
// owner-scoped call acts on the authenticated user's records.
type LedgerService struct {
	facade *ledger.Facade
	rules  []classify.Rule
	logger *slog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(facade *ledger.Facade, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		facade: facade,
		rules:  classify.DefaultRules,
		logger: logger,
	}
}

// --- Categories ---

func (s *LedgerService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories, err := s.facade.ListCategories(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: categories}), nil
}

func (s *LedgerService) AddCategory(ctx context.Context, req *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.AddCategoryResponse], error) {
	name, err := s.facade.AddCategory(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddCategoryResponse{Name: name}), nil
}

func (s *LedgerService) RenameCategory(ctx context.Context, req *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.RenameCategoryResponse], error) {
	if err := s.facade.RenameCategory(ctx, req.Msg.OldName, req.Msg.NewName); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RenameCategoryResponse{}), nil
}

func (s *LedgerService) RemoveCategory(ctx context.Context, req *connect.Request[api.RemoveCategoryRequest]) (*connect.Response[api.RemoveCategoryResponse], error) {
	if err := s.facade.RemoveCategory(ctx, req.Msg.Name); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveCategoryResponse{}), nil
}

// SuggestCategory classifies free text, such as a bank statement line, and
// reports whether the suggested category is registered.
func (s *LedgerService) SuggestCategory(ctx context.Context, req *connect.Request[api.SuggestCategoryRequest]) (*connect.Response[api.SuggestCategoryResponse], error) {
	suggested := models.NormalizeCategory(classify.Classify(req.Msg.Text, s.rules, classify.DefaultFallback))

	categories, err := s.facade.ListCategories(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SuggestCategoryResponse{
		Category:   suggested,
		Registered: slices.Contains(categories, suggested),
	}), nil
}

// --- Transactions ---

func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	owner, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	date, err := parseOptionalDate(req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}

	tx, err := s.facade.AddTransaction(ctx, owner, models.NewTransaction{
		Amount:      req.Msg.Amount,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		Kind:        req.Msg.Kind,
		Date:        date,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.DebugContext(ctx, "Transaction added", "owner", owner, "id", tx.ID, "category", tx.Category)
	return connect.NewResponse(&api.AddTransactionResponse{Transaction: toAPITransaction(tx)}), nil
}

func (s *LedgerService) EditTransaction(ctx context.Context, req *connect.Request[api.EditTransactionRequest]) (*connect.Response[api.EditTransactionResponse], error) {
	owner, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	patch := models.TransactionPatch{
		Amount:      req.Msg.Amount,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		Kind:        req.Msg.Kind,
	}
	if req.Msg.Date != nil {
		date, err := models.ParseDate(*req.Msg.Date)
		if err != nil {
			return nil, toConnectError(err)
		}
		patch.Date = &date
	}

	tx, err := s.facade.EditTransaction(ctx, owner, req.Msg.ID, patch)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.EditTransactionResponse{Transaction: toAPITransaction(tx)}), nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	owner, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := s.facade.DeleteTransaction(ctx, owner, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteTransactionResponse{Deleted: deleted}), nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	owner, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.facade.ListTransactions(ctx, owner)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]api.Transaction, 0, len(txs))
	for i := range txs {
		out = append(out, toAPITransaction(&txs[i]))
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: out}), nil
}

// --- Budgets and reports ---

func (s *LedgerService) GetBudgets(ctx context.Context, req *connect.Request[api.GetBudgetsRequest]) (*connect.Response[api.GetBudgetsResponse], error) {
	owner, period, err := s.scope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	budgets, err := s.facade.GetBudgets(ctx, owner, period)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBudgetsResponse{Period: period.String(), Budgets: budgets}), nil
}

func (s *LedgerService) SetBudgets(ctx context.Context, req *connect.Request[api.SetBudgetsRequest]) (*connect.Response[api.SetBudgetsResponse], error) {
	owner, period, err := s.scope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	if err := s.facade.SetBudgets(ctx, owner, period, req.Msg.Budgets); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SetBudgetsResponse{}), nil
}

func (s *LedgerService) RemoveBudget(ctx context.Context, req *connect.Request[api.RemoveBudgetRequest]) (*connect.Response[api.RemoveBudgetResponse], error) {
	owner, period, err := s.scope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	removed, err := s.facade.RemoveBudget(ctx, owner, req.Msg.Category, period)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveBudgetResponse{Removed: removed}), nil
}

func (s *LedgerService) GetAlerts(ctx context.Context, req *connect.Request[api.GetAlertsRequest]) (*connect.Response[api.GetAlertsResponse], error) {
	owner, period, err := s.scope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	alerts, err := s.facade.GetAlerts(ctx, owner, period)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetAlertsResponse{Period: period.String(), Alerts: toAPIAlerts(alerts)}), nil
}

func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	owner, period, err := s.scope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	summary, err := s.facade.GetSummary(ctx, owner, period)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetSummaryResponse{Summary: toAPISummary(summary)}), nil
}

// scope returns the caller and the requested period.
func (s *LedgerService) scope(ctx context.Context, rawPeriod string) (string, models.Period, error) {
	owner, err := currentUser(ctx)
	if err != nil {
		return "", models.Period{}, err
	}
	period, err := parsePeriod(rawPeriod)
	if err != nil {
		return "", models.Period{}, toConnectError(err)
	}
	return owner, period, nil
}
