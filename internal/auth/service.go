package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	"github.com/angelmondragon/yahipe-backend/pkg/config"
	"github.com/angelmondragon/yahipe-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
	"github.com/angelmondragon/yahipe-backend/pkg/security"
	"github.com/google/uuid"
)

// InvalidCredentialsMessage is the only login failure users ever see.
const InvalidCredentialsMessage = "Invalid email or password."

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

type userDirectory interface {
	Users() []catalog.User
	UserByEmail(email string) (catalog.User, bool)
	ShopForOwner(user catalog.User) (catalog.Shop, error)
}

type sessionStore interface {
	Create(user catalog.User, shop *catalog.Shop) *session.Session
	Delete(id uuid.UUID) bool
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Directory userDirectory
	Sessions  sessionStore
	Password  config.PasswordConfig
	Metrics   *metrics.Marketplace
	Logger    *logger.Logger
}

type service struct {
	directory userDirectory
	sessions  sessionStore
	hashes    map[string]string
	metrics   *metrics.Marketplace
	logg      *logger.Logger
}

// NewService hashes every seeded credential once so logins compare against
// argon2 hashes instead of the plaintext seed.
func NewService(params ServiceParams) (Service, error) {
	if params.Directory == nil {
		return nil, fmt.Errorf("user directory is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	users := params.Directory.Users()
	hashes := make(map[string]string, len(users))
	for _, u := range users {
		hash, err := security.HashPassword(u.Password, params.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.ID, err)
		}
		hashes[u.ID] = hash
	}

	return &service{
		directory: params.Directory,
		sessions:  params.Sessions,
		hashes:    hashes,
		metrics:   params.Metrics,
		logg:      logg,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(req.Email, req.Password)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			s.metrics.ObserveLogin("", metrics.OutcomeRejected)
			s.logg.Warn(ctx, "auth.login.rejected")
		}
		return nil, err
	}

	var workspace *catalog.Shop
	if user.Role == enums.UserRoleShopkeeper {
		shop, err := s.directory.ShopForOwner(user)
		switch {
		case err == nil:
			workspace = &shop
		case errors.Is(err, catalog.ErrShopNotFound):
			// The dashboard reports NOT_FOUND until a shop exists for this owner.
			s.logg.Warn(s.logg.WithUserID(ctx, user.ID), "auth.login.shop_missing")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve shop")
		}
	}

	sess := s.sessions.Create(user, workspace)
	ctx = s.logg.WithSessionID(s.logg.WithUserID(ctx, user.ID), sess.ID.String())
	s.logg.Info(ctx, "auth.login.success")
	s.metrics.ObserveLogin(user.Role.String(), metrics.OutcomeSuccess)

	return &LoginResponse{
		SessionID: sess.ID,
		User:      FromUser(user),
		Dashboard: DashboardFor(user.Role),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if !s.sessions.Delete(sessionID) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session not found")
	}
	s.logg.Info(s.logg.WithSessionID(ctx, sessionID.String()), "auth.logout")
	return nil
}

func (s *service) authenticate(email, password string) (catalog.User, error) {
	input := strings.TrimSpace(email)
	if input == "" || password == "" {
		return catalog.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, InvalidCredentialsMessage)
	}
	user, ok := s.directory.UserByEmail(input)
	if !ok {
		return catalog.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, InvalidCredentialsMessage)
	}
	hash, ok := s.hashes[user.ID]
	if !ok {
		return catalog.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, InvalidCredentialsMessage)
	}
	valid, err := security.VerifyPassword(password, hash)
	if err != nil {
		return catalog.User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return catalog.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, InvalidCredentialsMessage)
	}
	return user, nil
}

// DashboardFor names the dashboard a role lands on after login.
func DashboardFor(role enums.UserRole) string {
	switch role {
	case enums.UserRoleShopkeeper:
		return "shopkeeper"
	case enums.UserRoleConsumer:
		return "consumer"
	}
	return ""
}
