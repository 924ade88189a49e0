package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/leave_management/internal/hash"
	"github.com/Skotchmaster/leave_management/internal/logging"
	"github.com/Skotchmaster/leave_management/internal/models"
	"github.com/Skotchmaster/leave_management/internal/mykafka"
	"github.com/Skotchmaster/leave_management/internal/notify"
	"github.com/Skotchmaster/leave_management/internal/repo"
	"github.com/Skotchmaster/leave_management/internal/tokens"
)

const (
	msgAllFieldsRequired   = "All fields are required"
	msgUserExists          = "User already exists"
	msgPasswordTooShort    = "Password must be at least 8 characters long"
	msgPasswordTooLong     = "Password must be at most 72 bytes long"
	msgCredentialsRequired = "Email and password are required"
	msgInvalidCredentials  = "Invalid email or password"
	msgUserNotFound        = "User not found"
	msgResetFieldsRequired = "Token and new password are required"
	msgInvalidResetToken   = "Invalid or expired reset token"
)

type UserService struct {
	Users  UserRepository
	Tokens *tokens.Issuer
	Mailer notify.Mailer
	Events Publisher
	Now    func() time.Time
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func passwordError(err error) error {
	switch {
	case errors.Is(err, hash.ErrPasswordTooShort):
		return newError(ErrValidation, msgPasswordTooShort)
	case errors.Is(err, hash.ErrPasswordTooLong):
		return newError(ErrValidation, msgPasswordTooLong)
	}
	return fmt.Errorf("hash password: %w", err)
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, newError(ErrValidation, msgAllFieldsRequired)
	}

	_, err := s.Users.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		l.Warn("register_error", "status", 400, "reason", "email already registered")
		return nil, newError(ErrConflict, msgUserExists)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, passwordError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, newError(ErrConflict, msgUserExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	l.Info("user_registered", "user_id", user.ID)
	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID, mykafka.UserEvent{
		Type:       mykafka.EventUserRegistered,
		UserID:     user.ID,
		Email:      user.Email,
		Role:       string(user.Role),
		OccurredAt: s.now(),
	})
	return user, nil
}

// Login answers unknown email and wrong password identically.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.login")

	if email == "" || password == "" {
		return nil, newError(ErrValidation, msgCredentialsRequired)
	}

	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, newError(ErrInvalidCredentials, msgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "user_id", user.ID)
		return nil, newError(ErrInvalidCredentials, msgInvalidCredentials)
	}

	token, exp, err := s.Tokens.IssueSession(*user)
	if err != nil {
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// ForgotPassword stores a one-hour reset token and mails it. Delivery failures are logged only.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "user.forgot_password")

	if email == "" {
		return newError(ErrNotFound, msgUserNotFound)
	}
	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newError(ErrNotFound, msgUserNotFound)
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, exp, err := s.Tokens.IssueReset(user.ID)
	if err != nil {
		return err
	}
	if err := s.Users.SetResetToken(ctx, user.ID, token, exp); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if s.Mailer != nil {
		if err := s.Mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
			l.Error("reset_email_failed", "user_id", user.ID, "error", err)
			return nil
		}
	}
	l.Info("reset_email_sent", "user_id", user.ID)
	return nil
}

// ResetPassword accepts a reset token only while it is the one stored on the user and unexpired.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "user.reset_password")

	if token == "" || newPassword == "" {
		return newError(ErrValidation, msgResetFieldsRequired)
	}

	claims, err := s.Tokens.ParseReset(token)
	if err != nil {
		if errors.Is(err, tokens.ErrSecretMissing) {
			return err
		}
		l.Warn("reset_failed", "status", 400, "reason", "token verification failed", "error", err)
		return newError(ErrInvalidResetToken, msgInvalidResetToken)
	}

	user, err := s.Users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newError(ErrNotFound, msgUserNotFound)
		}
		return fmt.Errorf("find user: %w", err)
	}

	now := s.now()
	if user.ResetToken == nil || *user.ResetToken != token ||
		user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(now) {
		l.Warn("reset_failed", "status", 400, "reason", "stored token mismatch or expired", "user_id", user.ID)
		return newError(ErrInvalidResetToken, msgInvalidResetToken)
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return passwordError(err)
	}

	if err := s.Users.ResetPassword(ctx, user.ID, token, pwHash, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newError(ErrInvalidResetToken, msgInvalidResetToken)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	l.Info("password_reset", "user_id", user.ID)
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(ErrNotFound, msgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *UserService) SetRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, newError(ErrValidation, fmt.Sprintf("invalid role %q", role))
	}
	user, err := s.Users.SetRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(ErrNotFound, msgUserNotFound)
		}
		return nil, fmt.Errorf("set role: %w", err)
	}
	logging.FromContext(ctx).Info("role_changed", "svc", "user.set_role", "user_id", user.ID, "role", role)
	return user, nil
}
