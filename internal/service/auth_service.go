package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mauth/internal/model"
	appErr "github.com/xxxsen/mauth/internal/pkg/errors"
	"github.com/xxxsen/mauth/internal/pkg/jwt"
	"github.com/xxxsen/mauth/internal/pkg/password"
	"github.com/xxxsen/mauth/internal/store"
)

// AuthResult is what Register and SignIn hand back. It never carries the hash.
type AuthResult struct {
	ID    int64
	Name  string
	Email string
	Token string
}

type AuthService struct {
	users  store.Store
	hasher *password.Hasher
	tokens *jwt.Manager

	// writeMu serializes the load-check-append-save sequence of Register
	// within this process.
	writeMu sync.Mutex
}

func NewAuthService(users store.Store, hasher *password.Hasher, tokens *jwt.Manager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, name, email, plainPassword string) (*AuthResult, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if findByEmail(users, email) != nil {
		return nil, fmt.Errorf("%w: user with email:%s already exist", appErr.ErrConflict, email)
	}
	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := model.User{
		ID:           int64(len(users)),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	users = append(users, user)
	if err := s.users.SaveAll(ctx, users); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	logutil.GetLogger(ctx).Info("user registered", zap.Int64("user_id", user.ID), zap.String("email", email))
	return newAuthResult(&user, token), nil
}

func (s *AuthService) SignIn(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	user := findByEmail(users, email)
	if user == nil {
		return nil, fmt.Errorf("%w: user with email:%s does not exist", appErr.ErrNotFound, email)
	}
	ok, err := s.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErr.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	logutil.GetLogger(ctx).Info("user signed in", zap.Int64("user_id", user.ID))
	return newAuthResult(user, token), nil
}

// VerifyAccess collapses every token failure into ErrAccessDenied. The
// *jwt.TokenError stays in the chain for callers that want the kind.
func (s *AuthService) VerifyAccess(ctx context.Context, token string) (int64, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		kind, _ := jwt.KindOf(err)
		logutil.GetLogger(ctx).Debug("token rejected", zap.String("kind", string(kind)), zap.Error(err))
		return 0, fmt.Errorf("%w: %w", appErr.ErrAccessDenied, err)
	}
	return userID, nil
}

func findByEmail(users []model.User, email string) *model.User {
	for i := range users {
		if users[i].Email == email {
			return &users[i]
		}
	}
	return nil
}

func newAuthResult(user *model.User, token string) *AuthResult {
	return &AuthResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}
}
