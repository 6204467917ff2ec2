package auth

import (
	"context"
	"errors"

	"github.com/Domenick1991/airops/internal/apperrors"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/Domenick1991/airops/internal/repository"
	"github.com/Domenick1991/airops/internal/validation"
)

var (
	ErrEmptyField         = validation.ErrEmptyField
	ErrDuplicateUsername  = errors.New("duplicate username")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	MsgEmptyUsername      = "Username cannot be empty, please try again and enter a valid username."
	MsgEmptyPassword      = "Password cannot be empty, please try again and enter a valid password."
	MsgDuplicateUsername  = "Username already exists. please try again with a different username."
	MsgInvalidRole        = "Invalid role! Please try again and enter a valid role."
	MsgInvalidCredentials = "User not found or password incorrect."
)

type AuthUseCase interface {
	CheckUsername(ctx context.Context, username string) error
	CreateAccount(ctx context.Context, username, password, role string) error
	LogIn(ctx context.Context, username, password string) (domain.Identity, error)
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type AuthService struct {
	accounts  repository.AccountRepository
	publisher Publisher
}

// NewAuthService builds the service; publisher may be nil.
func NewAuthService(accounts repository.AccountRepository, publisher Publisher) *AuthService {
	return &AuthService{accounts: accounts, publisher: publisher}
}

// CheckUsername reports a blank or taken username, so a console can reject it
// before asking for the password.
func (s *AuthService) CheckUsername(ctx context.Context, username string) error {
	if err := validation.Required(username, MsgEmptyUsername); err != nil {
		return err
	}
	exists, err := s.accounts.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflictError(MsgDuplicateUsername, ErrDuplicateUsername)
	}
	return nil
}

func (s *AuthService) CreateAccount(ctx context.Context, username, password, role string) error {
	if err := validation.Required(username, MsgEmptyUsername); err != nil {
		return err
	}
	if err := validation.Required(password, MsgEmptyPassword); err != nil {
		return err
	}
	if err := s.CheckUsername(ctx, username); err != nil {
		return err
	}

	canonical, ok := domain.ParseRole(role)
	if !ok {
		return apperrors.NewValidationError(MsgInvalidRole, ErrInvalidRole)
	}

	err := s.accounts.Create(ctx, domain.Account{Username: username, Password: password, Role: canonical})
	if err != nil {
		if errors.Is(err, repository.ErrKeyConflict) {
			return apperrors.NewConflictError(MsgDuplicateUsername, ErrDuplicateUsername)
		}
		return err
	}

	logger.Info().Str("username", username).Str("role", string(canonical)).Msg("account created")
	s.publish(ctx, domain.NewEvent(domain.EventAccountCreated, username, map[string]string{"role": string(canonical)}))
	return nil
}

func (s *AuthService) LogIn(ctx context.Context, username, password string) (domain.Identity, error) {
	if err := validation.Required(username, MsgEmptyUsername); err != nil {
		return domain.Identity{}, err
	}
	if err := validation.Required(password, MsgEmptyPassword); err != nil {
		return domain.Identity{}, err
	}

	role, err := s.accounts.FindRole(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Identity{}, apperrors.NewNotFoundError(MsgInvalidCredentials, ErrInvalidCredentials)
		}
		return domain.Identity{}, err
	}

	return domain.Identity{Username: username, Role: role}, nil
}

func (s *AuthService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish event")
	}
}

var _ AuthUseCase = (*AuthService)(nil)
