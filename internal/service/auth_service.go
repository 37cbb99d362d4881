package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindlift/internal/dto"
	"mindlift/internal/entity"
	"mindlift/internal/repository"
	"mindlift/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compared against on unknown-email logins so response timing does not
// reveal whether an account exists.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthConfig struct {
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	AppBaseURL           string
}

type AuthService struct {
	users         repository.UserRepository
	verifications repository.VerificationTokenRepository

	passwordHash PasswordHasher
	tokens       SessionTokenIssuer
	notifier     Notifier
	emailSender  EmailSender
	clock        Clock
	config       AuthConfig
	log          *logrus.Logger
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.VerificationTokenRepository,
	passwordHash PasswordHasher,
	tokens SessionTokenIssuer,
	notifier Notifier,
	emailSender EmailSender,
	clock Clock,
	config AuthConfig,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		passwordHash:  passwordHash,
		tokens:        tokens,
		notifier:      notifier,
		emailSender:   emailSender,
		clock:         clock,
		config:        config,
		log:           log,
	}
}

type SignupResult struct {
	User      *entity.User
	Token     string
	ExpiresIn time.Duration
}

// Signup creates the user and issues a session token. A store failure
// at any point fails closed with ErrStoreUnavailable; no token is ever
// fabricated.
func (s *AuthService) Signup(ctx context.Context, input dto.SignupRequest) (*SignupResult, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	role := entity.UserRoleSubscriber
	if input.Role != "" {
		role = entity.UserRole(input.Role)
		if !role.SignupAllowed() {
			return nil, ErrRoleNotAllowed
		}
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Country:      strings.TrimSpace(input.Country),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, ErrStoreUnavailable
	}

	token, expiresIn, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		return nil, err
	}

	s.sendEmailVerification(ctx, user)

	return &SignupResult{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input dto.LoginRequest) (*SignupResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		return nil, ErrInvalidCreds
	}
	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCreds
	}

	token, expiresIn, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.WithError(err).Warn("failed to stamp last login")
	}

	return &SignupResult{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	verification, err := s.verifications.FindValid(ctx, utils.HashToken(token), entity.EmailVerify)
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrInvalidToken
	}

	if err := s.users.VerifyEmail(ctx, verification.UserID); err != nil {
		return err
	}
	return s.verifications.MarkUsed(ctx, verification.ID)
}

// RequestPasswordReset always reports success to the caller so the
// endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil || user.EmailVerifiedAt == nil {
		return nil
	}

	token, err := s.createVerificationToken(ctx, user.ID, entity.PasswordReset, s.resetTokenTTL())
	if err != nil {
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
			return err
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrInvalidInput
	}

	verification, err := s.verifications.FindValid(ctx, utils.HashToken(token), entity.PasswordReset)
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, verification.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.verifications.MarkUsed(ctx, verification.ID)
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// sendEmailVerification is fire-and-forget: the signup already
// succeeded and a delivery problem must not surface to the caller.
func (s *AuthService) sendEmailVerification(ctx context.Context, user *entity.User) {
	token, err := s.createVerificationToken(ctx, user.ID, entity.EmailVerify, s.verificationTokenTTL())
	if err != nil {
		s.log.WithError(err).Warn("failed to create verification token")
		return
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(s.config.AppBaseURL, "/"), token)
	if s.notifier != nil {
		err := s.notifier.Notify(ctx, nil, user.ID, entity.NotifyEmailVerification,
			"Verify your email",
			fmt.Sprintf("Welcome to MindLift, %s! Verify your email: %s", user.Name, link),
			map[string]any{"link": link})
		if err != nil {
			s.log.WithError(err).Warn("failed to queue verification notification")
		}
	}
}

func (s *AuthService) createVerificationToken(
	ctx context.Context,
	userID uuid.UUID,
	typeValue entity.VerificationType,
	ttl time.Duration,
) (string, error) {
	rawToken, err := utils.GenerateRandomToken(32)
	if err != nil {
		return "", err
	}

	verification := &entity.VerificationToken{
		UserID:    userID,
		TokenHash: utils.HashToken(rawToken),
		Type:      typeValue,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) verificationTokenTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return 24 * time.Hour
}

func (s *AuthService) resetTokenTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return 30 * time.Minute
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
