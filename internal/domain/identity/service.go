package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/medconnect/medconnect/internal/platform/auth"
	"github.com/medconnect/medconnect/internal/platform/db"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("invalid input")
)

type Service struct {
	users  UserRepository
	tokens *auth.TokenManager
	tx     db.TxRunner
}

func NewService(users UserRepository, tokens *auth.TokenManager, tx db.TxRunner) *Service {
	return &Service{users: users, tokens: tokens, tx: tx}
}

// Register creates a new user with a bcrypt-hashed password. The raw
// password is never stored. Email uniqueness is byte-exact: addresses
// differing only in case are distinct accounts.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	if role == "" {
		role = auth.RolePatient
	}
	if !auth.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hash),
		Role:           role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues a signed session token. Unknown
// email and wrong password produce the same error so callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Generate(u.Email)
}

// GetByID fetches a user record.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a partial update: only present, non-empty fields
// change; the rest of the record is left as is. Runs in one transaction so
// the read-modify-write cannot lose a concurrent update.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*User, error) {
	var out *User
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if upd.Name != nil && *upd.Name != "" {
			u.Name = *upd.Name
		}
		if upd.Email != nil && *upd.Email != "" {
			u.Email = *upd.Email
		}
		if upd.Password != nil && *upd.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u.HashedPassword = string(hash)
		}
		if len(upd.Image) > 0 {
			u.ProfileImage = upd.Image
		}
		if err := s.users.Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveIdentity implements auth.Resolver by re-resolving the token
// subject against the current user record.
func (s *Service) ResolveIdentity(ctx context.Context, email string) (auth.Identity, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}
