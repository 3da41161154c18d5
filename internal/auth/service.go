package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/atelierlabs/storefront/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/multierr"
)

type accountsAPI interface {
	Login(ctx context.Context, email, password string) (*shopapi.AuthResponse, error)
	Register(ctx context.Context, input shopapi.RegisterInput) (*shopapi.AuthResponse, error)
	Me(ctx context.Context) (*shopapi.User, error)
	UpdateProfile(ctx context.Context, patch shopapi.ProfilePatch) (*shopapi.User, error)
}

// Service owns the session credential and the cached user profile. Both are
// persisted so a restart resumes the session.
type Service struct {
	api   accountsAPI
	store storage.Store
	log   *logger.Logger

	mu    sync.Mutex
	token string
	user  *shopapi.User
}

// NewService builds an auth service and restores any persisted session. A
// stored token that parses as an expired JWT is discarded rather than
// restored.
func NewService(ctx context.Context, api accountsAPI, store storage.Store, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage backend required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &Service{api: api, store: store, log: log}
	s.restore(ctx)
	return s, nil
}

func (s *Service) restore(ctx context.Context) {
	raw, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn(ctx, "stored token unreadable, starting signed out")
		}
		return
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return
	}
	if tokenExpired(token) {
		s.log.Info(ctx, "stored session expired, signing out")
		if err := s.store.Delete(ctx, storage.KeyToken); err != nil {
			s.log.Warn(ctx, "drop expired token")
		}
		if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
			s.log.Warn(ctx, "drop stored profile")
		}
		return
	}
	s.token = token

	rawUser, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return
	}
	var user shopapi.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "stored profile corrupt, ignoring")
		return
	}
	s.user = &user
}

// tokenExpired reports whether the credential is a JWT with an exp claim in
// the past. Opaque tokens are assumed valid until the server rejects them.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Token returns the current session credential, empty when signed out. It
// satisfies the API client's token source contract.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached profile, or nil when signed out.
func (s *Service) User() *shopapi.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// IsAuthenticated reports whether a session credential is held.
func (s *Service) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login exchanges credentials for a session token and persists the session.
func (s *Service) Login(ctx context.Context, email, password string) (*shopapi.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.storeSession(ctx, resp); err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithUserID(ctx, fmt.Sprintf("%d", resp.User.ID)), "signed in")
	return s.User(), nil
}

// Register creates an account and starts a session with the returned token.
func (s *Service) Register(ctx context.Context, input shopapi.RegisterInput) (*shopapi.User, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	resp, err := s.api.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.storeSession(ctx, resp); err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithUserID(ctx, fmt.Sprintf("%d", resp.User.ID)), "account created")
	return s.User(), nil
}

func (s *Service) storeSession(ctx context.Context, resp *shopapi.AuthResponse) error {
	if err := s.store.Put(ctx, storage.KeyToken, []byte(resp.Token)); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeyUser, rawUser); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	s.mu.Lock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout drops the session locally. Storage cleanup errors are combined so
// one failing delete does not hide the other.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	err := multierr.Combine(
		s.store.Delete(ctx, storage.KeyToken),
		s.store.Delete(ctx, storage.KeyUser),
	)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "signed out")
	return nil
}

// RefreshProfile refetches the profile from the server and updates the
// cached copy.
func (s *Service) RefreshProfile(ctx context.Context) (*shopapi.User, error) {
	if !s.IsAuthenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	return s.cacheUser(ctx, user)
}

// UpdateProfile patches the remote profile and refreshes the cached copy.
func (s *Service) UpdateProfile(ctx context.Context, patch shopapi.ProfilePatch) (*shopapi.User, error) {
	if !s.IsAuthenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
	}
	user, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}
	return s.cacheUser(ctx, user)
}

func (s *Service) cacheUser(ctx context.Context, user *shopapi.User) (*shopapi.User, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeyUser, raw); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	copied := *user
	return &copied, nil
}
