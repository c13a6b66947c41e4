package account

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	"github.com/Karmugilan015/aution-platform/internal/models"
	"github.com/Karmugilan015/aution-platform/internal/repository"
	"github.com/Karmugilan015/aution-platform/internal/token"
	"github.com/Karmugilan015/aution-platform/utils"
)

// AccountService implements registration and sign-in over the credential store.
type AccountService struct {
	store  repository.UserStore
	tokens *token.JWTManager
}

// NewAccountService creates a new AccountService instance
func NewAccountService(store repository.UserStore, tokens *token.JWTManager) *AccountService {
	return &AccountService{
		store:  store,
		tokens: tokens,
	}
}

// Signup creates a new user with a bcrypt password digest. Duplicate
// usernames are rejected up front; the store's uniqueness constraint remains
// as a backstop against races.
func (s *AccountService) Signup(username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - missing username or password", auctionerrors.ErrInvalidInput)
	}

	_, err := s.store.GetUserByUsername(username)
	if err == nil {
		return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUsernameTaken)
	}
	if !errors.Is(err, auctionerrors.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("service: failed to check username %s: %w", username, err)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := models.User{
		UserID:         utils.GenerateID(),
		Username:       username,
		PasswordDigest: string(digest),
	}

	if err := s.store.CreateUser(user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to create user %s: %w", username, err)
	}

	return user, nil
}

// Signin verifies the credentials and issues a bearer token. Unknown
// usernames and wrong passwords both map to ErrInvalidCredentials.
func (s *AccountService) Signin(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("service: %w - missing username or password", auctionerrors.ErrInvalidInput)
	}

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("service: failed to get user %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		return "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("service: failed to issue token for user %s: %w", username, err)
	}

	return signed, nil
}
