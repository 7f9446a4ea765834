package auth

import (
	"context"
	"fmt"
	"log/slog"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(userID int64) (*userDatamodel.User, error)
	CreateWithProfile(u *userDatamodel.User, p *userDatamodel.Profile) error
	Activate(userID int64) error
	UpdatePasswordHash(userID int64, hash string) error
}

// Service performs registration, credential checks and the email
// verification sequence.
type Service struct {
	repo       Repository
	tokens     *VerificationTokenGenerator
	policy     PasswordPolicy
	bus        *events.EventBus
	baseURL    string
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, tokens *VerificationTokenGenerator, policy PasswordPolicy, bus *events.EventBus, baseURL string, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		policy:     policy,
		bus:        bus,
		baseURL:    baseURL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an inactive account and its profile in one transaction,
// then hands the verification link to the notifier via the event bus.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.policy.Validate(dto.Password); err != nil {
		return nil, ValidationError{Msg: err.Error()}
	}

	email := dto.NormalizedEmail()
	if _, err := s.repo.GetByEmail(email); err == nil {
		s.logger.Warn("registration rejected: duplicate email", "email", email)
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	record := &userDatamodel.User{
		Email:        email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		IsActive:     false,
	}
	profile := &userDatamodel.Profile{}

	if err := s.repo.CreateWithProfile(record, profile); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, err
	}

	token, err := s.tokens.Generate(record.ID)
	if err != nil {
		s.logger.Error("failed to issue verification token", "error", err, "user_id", record.ID)
		return nil, err
	}

	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email/%d/%s", s.baseURL, record.ID, token)
	if err := s.bus.Publish(ctx, events.NewUserRegisteredEvent(record.ID, email, record.Name, verificationURL)); err != nil {
		s.logger.Error("failed to publish registration event", "error", err, "user_id", record.ID)
	}

	s.logger.Info("user registered, verification pending", "user_id", record.ID, "email", email)

	record.Profile = profile
	return FromDataModel(record), nil
}

// Authenticate validates credentials against the stored hash. Inactive
// accounts fail even with correct credentials.
func (s *Service) Authenticate(dto LoginDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByEmail(dto.NormalizedEmail())
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !record.IsActive {
		return nil, ErrUserInactive
	}

	return FromDataModel(record), nil
}

// VerifyEmail activates the account bound to a valid token. The uid in the
// URL must match the token's subject; a mismatch is an invalid token, not a
// not-found.
func (s *Service) VerifyEmail(uid int64, token string) error {
	tokenUserID, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if tokenUserID != uid {
		return ErrInvalidToken
	}

	record, err := s.repo.GetByID(uid)
	if err != nil {
		return ErrInvalidToken
	}

	if record.IsActive {
		// already verified, idempotent
		return nil
	}

	if err := s.repo.Activate(uid); err != nil {
		s.logger.Error("failed to activate user", "error", err, "user_id", uid)
		return err
	}

	s.logger.Info("email verified, account activated", "user_id", uid)
	return nil
}

// ChangePassword rotates the credential. The new password must satisfy the
// policy and must not equal the current one.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if err := s.policy.Validate(dto.NewPassword); err != nil {
		return ValidationError{Msg: err.Error()}
	}

	if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(dto.NewPassword)) == nil {
		return ErrPasswordReuse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(userID, string(hash)); err != nil {
		s.logger.Error("failed to update password", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// GetUserByID loads the principal for the session middleware.
func (s *Service) GetUserByID(userID int64) (*User, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return FromDataModel(record), nil
}
