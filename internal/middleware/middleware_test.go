package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famfin/fintrack/internal/auth"
	"github.com/famfin/fintrack/internal/metrics"
	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/pkg/api"
	"github.com/famfin/fintrack/pkg/api/apiconnect"
)

// echoAuth answers GetCurrentUser from the request context.
type echoAuth struct{}

func (echoAuth) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, nil)
}

func (echoAuth) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return connect.NewResponse(&api.LoginResponse{Token: "public"}), nil
}

func (echoAuth) ChangePassword(context.Context, *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, nil)
}

func (echoAuth) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return connect.NewResponse(&api.GetCurrentUserResponse{
		User: api.User{ID: GetUserID(ctx), Username: GetUsername(ctx)},
	}), nil
}

func setup(t *testing.T) (apiconnect.AuthServiceClient, *auth.JWTManager) {
	t.Helper()

	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path, handler := apiconnect.NewAuthServiceHandler(echoAuth{},
		connect.WithInterceptors(
			MetricsInterceptor(),
			RequireAuth(jwtManager, apiconnect.AuthServiceLoginProcedure),
			LoggingInterceptor(logger),
		),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(CORS(HTTPLogging(logger, mux)))
	t.Cleanup(server.Close)

	return apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL), jwtManager
}

func TestRequireAuth_MissingToken(t *testing.T) {
	client, _ := setup(t)

	_, err := client.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestRequireAuth_BadHeader(t *testing.T) {
	client, jwtManager := setup(t)
	token, err := jwtManager.Generate(&models.User{ID: "u1", Username: "ana"})
	require.NoError(t, err)

	for _, header := range []string{"Token " + token, "Bearer", "Bearer not-a-jwt"} {
		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		req.Header().Set("Authorization", header)
		_, err := client.GetCurrentUser(context.Background(), req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err), header)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	client, jwtManager := setup(t)
	token, err := jwtManager.Generate(&models.User{ID: "u1", Username: "ana"})
	require.NoError(t, err)

	req := connect.NewRequest(&api.GetCurrentUserRequest{})
	req.Header().Set("Authorization", "Bearer "+token)
	resp, err := client.GetCurrentUser(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.Msg.User.ID)
	assert.Equal(t, "ana", resp.Msg.User.Username)
}

func TestRequireAuth_PublicProcedure(t *testing.T) {
	client, _ := setup(t)

	resp, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{Username: "ana"}))
	require.NoError(t, err)
	assert.Equal(t, "public", resp.Msg.Token)
}

func TestMetricsInterceptor_RecordsCode(t *testing.T) {
	client, _ := setup(t)

	_, _ = client.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `code="unauthenticated",procedure="/fintrack.v1.AuthService/GetCurrentUser"`), body)
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight reached the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
