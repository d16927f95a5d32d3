package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/recyclo/cashbook/internal/domain"
)

const bcryptCost = 10

// UserService handles authentication and user provisioning.
type UserService struct {
	users  UserRepository
	tokens TokenIssuer
	idGen  IDGenerator
}

// NewUserService creates a new UserService.
func NewUserService(users UserRepository, tokens TokenIssuer, idGen IDGenerator) *UserService {
	return &UserService{users: users, tokens: tokens, idGen: idGen}
}

// LoginResult carries the issued token and the user it belongs to.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies credentials and issues a token. Wrong username and wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// No issuer means authentication is switched off for this deployment.
	if s.tokens == nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// CreateUser provisions a user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	if !role.IsValid() {
		return nil, domain.ErrUnauthorized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             s.idGen.Generate(),
		Username:       username,
		HashedPassword: string(hashed),
		Role:           role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SeedUser is one bootstrap account.
type SeedUser struct {
	Username string
	Password string
	Role     domain.Role
}

// SeedInitialUsers provisions the bootstrap accounts on an empty user
// table. A non-empty table is left untouched.
func (s *UserService) SeedInitialUsers(ctx context.Context, seeds []SeedUser) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	for _, seed := range seeds {
		if seed.Username == "" || seed.Password == "" {
			continue
		}

		if _, err := s.CreateUser(ctx, seed.Username, seed.Password, seed.Role); err != nil {
			return err
		}
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
