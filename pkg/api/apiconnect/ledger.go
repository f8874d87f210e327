package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/famfin/fintrack/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "fintrack.v1.LedgerService"

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	// LedgerServiceListCategoriesProcedure is the fully-qualified name of the LedgerService's ListCategories RPC.
	LedgerServiceListCategoriesProcedure    = "/fintrack.v1.LedgerService/ListCategories"
	// LedgerServiceAddCategoryProcedure is the fully-qualified name of the LedgerService's AddCategory RPC.
	LedgerServiceAddCategoryProcedure       = "/fintrack.v1.LedgerService/AddCategory"
	// LedgerServiceRenameCategoryProcedure is the fully-qualified name of the LedgerService's RenameCategory RPC.
	LedgerServiceRenameCategoryProcedure    = "/fintrack.v1.LedgerService/RenameCategory"
	// LedgerServiceRemoveCategoryProcedure is the fully-qualified name of the LedgerService's RemoveCategory RPC.
	LedgerServiceRemoveCategoryProcedure    = "/fintrack.v1.LedgerService/RemoveCategory"
	// LedgerServiceSuggestCategoryProcedure is the fully-qualified name of the LedgerService's SuggestCategory RPC.
	LedgerServiceSuggestCategoryProcedure   = "/fintrack.v1.LedgerService/SuggestCategory"
	// LedgerServiceAddTransactionProcedure is the fully-qualified name of the LedgerService's AddTransaction RPC.
	LedgerServiceAddTransactionProcedure    = "/fintrack.v1.LedgerService/AddTransaction"
	// LedgerServiceEditTransactionProcedure is the fully-qualified name of the LedgerService's EditTransaction RPC.
	LedgerServiceEditTransactionProcedure   = "/fintrack.v1.LedgerService/EditTransaction"
	// LedgerServiceDeleteTransactionProcedure is the fully-qualified name of the LedgerService's DeleteTransaction RPC.
	LedgerServiceDeleteTransactionProcedure = "/fintrack.v1.LedgerService/DeleteTransaction"
	// LedgerServiceListTransactionsProcedure is the fully-qualified name of the LedgerService's ListTransactions RPC.
	LedgerServiceListTransactionsProcedure  = "/fintrack.v1.LedgerService/ListTransactions"
	// LedgerServiceGetBudgetsProcedure is the fully-qualified name of the LedgerService's GetBudgets RPC.
	LedgerServiceGetBudgetsProcedure        = "/fintrack.v1.LedgerService/GetBudgets"
	// LedgerServiceSetBudgetsProcedure is the fully-qualified name of the LedgerService's SetBudgets RPC.
	LedgerServiceSetBudgetsProcedure        = "/fintrack.v1.LedgerService/SetBudgets"
	// LedgerServiceRemoveBudgetProcedure is the fully-qualified name of the LedgerService's RemoveBudget RPC.
	LedgerServiceRemoveBudgetProcedure      = "/fintrack.v1.LedgerService/RemoveBudget"
	// LedgerServiceGetAlertsProcedure is the fully-qualified name of the LedgerService's GetAlerts RPC.
	LedgerServiceGetAlertsProcedure         = "/fintrack.v1.LedgerService/GetAlerts"
	// LedgerServiceGetSummaryProcedure is the fully-qualified name of the LedgerService's GetSummary RPC.
	LedgerServiceGetSummaryProcedure        = "/fintrack.v1.LedgerService/GetSummary"
)

// LedgerServiceClient is a client for the fintrack.v1.LedgerService service.
type LedgerServiceClient interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	AddCategory(context.Context, *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.AddCategoryResponse], error)
	RenameCategory(context.Context, *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.RenameCategoryResponse], error)
	RemoveCategory(context.Context, *connect.Request[api.RemoveCategoryRequest]) (*connect.Response[api.RemoveCategoryResponse], error)
	SuggestCategory(context.Context, *connect.Request[api.SuggestCategoryRequest]) (*connect.Response[api.SuggestCategoryResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	EditTransaction(context.Context, *connect.Request[api.EditTransactionRequest]) (*connect.Response[api.EditTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetBudgets(context.Context, *connect.Request[api.GetBudgetsRequest]) (*connect.Response[api.GetBudgetsResponse], error)
	SetBudgets(context.Context, *connect.Request[api.SetBudgetsRequest]) (*connect.Response[api.SetBudgetsResponse], error)
	RemoveBudget(context.Context, *connect.Request[api.RemoveBudgetRequest]) (*connect.Response[api.RemoveBudgetResponse], error)
	GetAlerts(context.Context, *connect.Request[api.GetAlertsRequest]) (*connect.Response[api.GetAlertsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewLedgerServiceClient constructs a client for the fintrack.v1.LedgerService service.
// Requests are sent as JSON.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](
			httpClient,
			baseURL+LedgerServiceListCategoriesProcedure,
			opts...,
		),
		addCategory: connect.NewClient[api.AddCategoryRequest, api.AddCategoryResponse](
			httpClient,
			baseURL+LedgerServiceAddCategoryProcedure,
			opts...,
		),
		renameCategory: connect.NewClient[api.RenameCategoryRequest, api.RenameCategoryResponse](
			httpClient,
			baseURL+LedgerServiceRenameCategoryProcedure,
			opts...,
		),
		removeCategory: connect.NewClient[api.RemoveCategoryRequest, api.RemoveCategoryResponse](
			httpClient,
			baseURL+LedgerServiceRemoveCategoryProcedure,
			opts...,
		),
		suggestCategory: connect.NewClient[api.SuggestCategoryRequest, api.SuggestCategoryResponse](
			httpClient,
			baseURL+LedgerServiceSuggestCategoryProcedure,
			opts...,
		),
		addTransaction: connect.NewClient[api.AddTransactionRequest, api.AddTransactionResponse](
			httpClient,
			baseURL+LedgerServiceAddTransactionProcedure,
			opts...,
		),
		editTransaction: connect.NewClient[api.EditTransactionRequest, api.EditTransactionResponse](
			httpClient,
			baseURL+LedgerServiceEditTransactionProcedure,
			opts...,
		),
		deleteTransaction: connect.NewClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](
			httpClient,
			baseURL+LedgerServiceDeleteTransactionProcedure,
			opts...,
		),
		listTransactions: connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](
			httpClient,
			baseURL+LedgerServiceListTransactionsProcedure,
			opts...,
		),
		getBudgets: connect.NewClient[api.GetBudgetsRequest, api.GetBudgetsResponse](
			httpClient,
			baseURL+LedgerServiceGetBudgetsProcedure,
			opts...,
		),
		setBudgets: connect.NewClient[api.SetBudgetsRequest, api.SetBudgetsResponse](
			httpClient,
			baseURL+LedgerServiceSetBudgetsProcedure,
			opts...,
		),
		removeBudget: connect.NewClient[api.RemoveBudgetRequest, api.RemoveBudgetResponse](
			httpClient,
			baseURL+LedgerServiceRemoveBudgetProcedure,
			opts...,
		),
		getAlerts: connect.NewClient[api.GetAlertsRequest, api.GetAlertsResponse](
			httpClient,
			baseURL+LedgerServiceGetAlertsProcedure,
			opts...,
		),
		getSummary: connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](
			httpClient,
			baseURL+LedgerServiceGetSummaryProcedure,
			opts...,
		),
	}
}

type ledgerServiceClient struct {
	listCategories    *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	addCategory       *connect.Client[api.AddCategoryRequest, api.AddCategoryResponse]
	renameCategory    *connect.Client[api.RenameCategoryRequest, api.RenameCategoryResponse]
	removeCategory    *connect.Client[api.RemoveCategoryRequest, api.RemoveCategoryResponse]
	suggestCategory   *connect.Client[api.SuggestCategoryRequest, api.SuggestCategoryResponse]
	addTransaction    *connect.Client[api.AddTransactionRequest, api.AddTransactionResponse]
	editTransaction   *connect.Client[api.EditTransactionRequest, api.EditTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	getBudgets        *connect.Client[api.GetBudgetsRequest, api.GetBudgetsResponse]
	setBudgets        *connect.Client[api.SetBudgetsRequest, api.SetBudgetsResponse]
	removeBudget      *connect.Client[api.RemoveBudgetRequest, api.RemoveBudgetResponse]
	getAlerts         *connect.Client[api.GetAlertsRequest, api.GetAlertsResponse]
	getSummary        *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

func (c *ledgerServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddCategory(ctx context.Context, req *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.AddCategoryResponse], error) {
	return c.addCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RenameCategory(ctx context.Context, req *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.RenameCategoryResponse], error) {
	return c.renameCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveCategory(ctx context.Context, req *connect.Request[api.RemoveCategoryRequest]) (*connect.Response[api.RemoveCategoryResponse], error) {
	return c.removeCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SuggestCategory(ctx context.Context, req *connect.Request[api.SuggestCategoryRequest]) (*connect.Response[api.SuggestCategoryResponse], error) {
	return c.suggestCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) EditTransaction(ctx context.Context, req *connect.Request[api.EditTransactionRequest]) (*connect.Response[api.EditTransactionResponse], error) {
	return c.editTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBudgets(ctx context.Context, req *connect.Request[api.GetBudgetsRequest]) (*connect.Response[api.GetBudgetsResponse], error) {
	return c.getBudgets.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetBudgets(ctx context.Context, req *connect.Request[api.SetBudgetsRequest]) (*connect.Response[api.SetBudgetsResponse], error) {
	return c.setBudgets.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveBudget(ctx context.Context, req *connect.Request[api.RemoveBudgetRequest]) (*connect.Response[api.RemoveBudgetResponse], error) {
	return c.removeBudget.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetAlerts(ctx context.Context, req *connect.Request[api.GetAlertsRequest]) (*connect.Response[api.GetAlertsResponse], error) {
	return c.getAlerts.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the fintrack.v1.LedgerService server.
type LedgerServiceHandler interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	AddCategory(context.Context, *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.AddCategoryResponse], error)
	RenameCategory(context.Context, *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.RenameCategoryResponse], error)
	RemoveCategory(context.Context, *connect.Request[api.RemoveCategoryRequest]) (*connect.Response[api.RemoveCategoryResponse], error)
	SuggestCategory(context.Context, *connect.Request[api.SuggestCategoryRequest]) (*connect.Response[api.SuggestCategoryResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	EditTransaction(context.Context, *connect.Request[api.EditTransactionRequest]) (*connect.Response[api.EditTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetBudgets(context.Context, *connect.Request[api.GetBudgetsRequest]) (*connect.Response[api.GetBudgetsResponse], error)
	SetBudgets(context.Context, *connect.Request[api.SetBudgetsRequest]) (*connect.Response[api.SetBudgetsResponse], error)
	RemoveBudget(context.Context, *connect.Request[api.RemoveBudgetRequest]) (*connect.Response[api.RemoveBudgetResponse], error)
	GetAlerts(context.Context, *connect.Request[api.GetAlertsRequest]) (*connect.Response[api.GetAlertsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceListCategoriesProcedure, connect.NewUnaryHandler(
		LedgerServiceListCategoriesProcedure,
		svc.ListCategories,
		opts...,
	))
	mux.Handle(LedgerServiceAddCategoryProcedure, connect.NewUnaryHandler(
		LedgerServiceAddCategoryProcedure,
		svc.AddCategory,
		opts...,
	))
	mux.Handle(LedgerServiceRenameCategoryProcedure, connect.NewUnaryHandler(
		LedgerServiceRenameCategoryProcedure,
		svc.RenameCategory,
		opts...,
	))
	mux.Handle(LedgerServiceRemoveCategoryProcedure, connect.NewUnaryHandler(
		LedgerServiceRemoveCategoryProcedure,
		svc.RemoveCategory,
		opts...,
	))
	mux.Handle(LedgerServiceSuggestCategoryProcedure, connect.NewUnaryHandler(
		LedgerServiceSuggestCategoryProcedure,
		svc.SuggestCategory,
		opts...,
	))
	mux.Handle(LedgerServiceAddTransactionProcedure, connect.NewUnaryHandler(
		LedgerServiceAddTransactionProcedure,
		svc.AddTransaction,
		opts...,
	))
	mux.Handle(LedgerServiceEditTransactionProcedure, connect.NewUnaryHandler(
		LedgerServiceEditTransactionProcedure,
		svc.EditTransaction,
		opts...,
	))
	mux.Handle(LedgerServiceDeleteTransactionProcedure, connect.NewUnaryHandler(
		LedgerServiceDeleteTransactionProcedure,
		svc.DeleteTransaction,
		opts...,
	))
	mux.Handle(LedgerServiceListTransactionsProcedure, connect.NewUnaryHandler(
		LedgerServiceListTransactionsProcedure,
		svc.ListTransactions,
		opts...,
	))
	mux.Handle(LedgerServiceGetBudgetsProcedure, connect.NewUnaryHandler(
		LedgerServiceGetBudgetsProcedure,
		svc.GetBudgets,
		opts...,
	))
	mux.Handle(LedgerServiceSetBudgetsProcedure, connect.NewUnaryHandler(
		LedgerServiceSetBudgetsProcedure,
		svc.SetBudgets,
		opts...,
	))
	mux.Handle(LedgerServiceRemoveBudgetProcedure, connect.NewUnaryHandler(
		LedgerServiceRemoveBudgetProcedure,
		svc.RemoveBudget,
		opts...,
	))
	mux.Handle(LedgerServiceGetAlertsProcedure, connect.NewUnaryHandler(
		LedgerServiceGetAlertsProcedure,
		svc.GetAlerts,
		opts...,
	))
	mux.Handle(LedgerServiceGetSummaryProcedure, connect.NewUnaryHandler(
		LedgerServiceGetSummaryProcedure,
		svc.GetSummary,
		opts...,
	))
	return "/fintrack.v1.LedgerService/", mux
}
