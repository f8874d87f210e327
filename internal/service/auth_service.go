package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/famfin/fintrack/internal/auth"
	"github.com/famfin/fintrack/internal/ledger"
	"github.com/famfin/fintrack/internal/middleware"
	"github.com/famfin/fintrack/pkg/api"
)

var errBadPassphrase = errors.New("registration passphrase required")

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	facade     *ledger.Facade
	jwtManager *auth.JWTManager
	passphrase string
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service. When passphrase is
// non-empty, Register rejects requests that do not carry it. The comparison
// ignores case and surrounding whitespace.
func NewAuthService(facade *ledger.Facade, jwtManager *auth.JWTManager, passphrase string, logger *slog.Logger) *AuthService {
	return &AuthService{
		facade:     facade,
		jwtManager: jwtManager,
		passphrase: normalizePassphrase(passphrase),
		logger:     logger,
	}
}

func normalizePassphrase(p string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(p))
}

// Register creates a new persona and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.InfoContext(ctx, "Register request", "username", req.Msg.Username)

	if s.passphrase != "" && subtle.ConstantTimeCompare([]byte(s.passphrase), []byte(normalizePassphrase(req.Msg.Passphrase))) != 1 {
		s.logger.WarnContext(ctx, "Registration refused", "username", req.Msg.Username)
		return nil, connect.NewError(connect.CodePermissionDenied, errBadPassphrase)
	}

	user, err := s.facade.Register(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "username", user.Username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.RegisterResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	user, err := s.facade.Login(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "Login failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "username", user.Username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.InfoContext(ctx, "User logged in", "username", user.Username)
	return connect.NewResponse(&api.LoginResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

// ChangePassword replaces the caller's password. Existing tokens stay valid
// until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	username, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.facade.ChangePassword(ctx, username, req.Msg.OldPassword, req.Msg.NewPassword); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ChangePasswordResponse{}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	username, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.facade.UserInfo(ctx, username)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

// currentUser returns the username set by middleware.RequireAuth.
func currentUser(ctx context.Context) (string, error) {
	username := middleware.GetUsername(ctx)
	if username == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return username, nil
}
