package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/codes"
	"pasar/pkg/mailer"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationService drives the two-step signup flow: a visitor submits
// credentials, receives a one-time code by email, and only becomes a durable
// account once the code is confirmed. Until then everything lives in the
// session store under an opaque token.
type RegistrationService struct {
	userRepo   repositories.UserRepository
	sessions   repositories.SessionStore
	mail       mailer.Mailer
	sessionTTL time.Duration
}

// NewRegistrationService creates a new RegistrationService. sessionTTL
// bounds how long an unconfirmed registration stays claimable.
func NewRegistrationService(userRepo repositories.UserRepository, sessions repositories.SessionStore, mail mailer.Mailer, sessionTTL time.Duration) *RegistrationService {
	return &RegistrationService{
		userRepo:   userRepo,
		sessions:   sessions,
		mail:       mail,
		sessionTTL: sessionTTL,
	}
}

// BeginRegistration checks the username is free, stores a registration
// session and emails the verification code. The returned token identifies
// the session in the confirm step.
//
// A failed email delivery does not undo the session: the token is returned
// together with the *mailer.DeliveryError so the caller can offer a resend.
func (s *RegistrationService) BeginRegistration(ctx context.Context, username, email, password string) (string, error) {
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return "", ErrDuplicateUsername
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return "", fmt.Errorf("failed to check username availability: %w", err)
	}

	code := codes.Issue()
	token := uuid.New().String()
	session := models.RegistrationSession{
		Username: username,
		Email:    email,
		Password: password,
		Code:     code,
		IssuedAt: time.Now(),
	}

	if err := s.sessions.Put(ctx, token, session, s.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to store registration session: %w", err)
	}

	if err := s.sendCode(email, code); err != nil {
		log.Printf("Warning: verification code delivery to %s failed: %v", email, err)
		return token, err
	}
	return token, nil
}

// ResendCode re-sends the code of an existing registration session.
func (s *RegistrationService) ResendCode(ctx context.Context, token string) error {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return ErrNoSuchSession
		}
		return fmt.Errorf("failed to load registration session: %w", err)
	}
	return s.sendCode(session.Email, session.Code)
}

// ConfirmRegistration checks the submitted code against the session and, on
// a match, consumes the session and creates the account with the password
// bcrypt-hashed. A wrong code leaves the session in place for a retry.
//
// The session delete must win exactly once, so a second confirmation with
// the same token, however quick, gets ErrNoSuchSession instead of a second
// account.
func (s *RegistrationService) ConfirmRegistration(ctx context.Context, token, submittedCode string) (string, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return "", ErrNoSuchSession
		}
		return "", fmt.Errorf("failed to load registration session: %w", err)
	}

	if session.Code != submittedCode {
		return "", ErrCodeMismatch
	}

	consumed, err := s.sessions.Delete(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to consume registration session: %w", err)
	}
	if !consumed {
		return "", ErrNoSuchSession
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(session.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: session.Username,
		Email:    session.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return user.ID, nil
}

func (s *RegistrationService) sendCode(email, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.sessionTTL.Minutes()))
	return s.mail.Send(email, "Your verification code", body)
}
