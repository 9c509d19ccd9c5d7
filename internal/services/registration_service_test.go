package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
	"pasar/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// fakeMailer records deliveries and can be told to fail the next one.
type fakeMailer struct {
	Sent     []sentMail
	FailNext bool
}

func (m *fakeMailer) Send(recipient, subject, body string) error {
	if m.FailNext {
		m.FailNext = false
		return &mailer.DeliveryError{Recipient: recipient, Err: errors.New("smtp unreachable")}
	}
	m.Sent = append(m.Sent, sentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

func newRegistrationFixture() (*services.RegistrationService, *MockUserRepository, *repositories.MockSessionStore, *fakeMailer) {
	mockRepo := new(MockUserRepository)
	sessions := repositories.NewMockSessionStore()
	mail := &fakeMailer{}
	svc := services.NewRegistrationService(mockRepo, sessions, mail, 15*time.Minute)
	return svc, mockRepo, sessions, mail
}

func TestRegistration_ConfirmCreatesExactlyOneAccount(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, sessions, mail := newRegistrationFixture()

	mockRepo.On("GetByUsername", "alice").Return(nil, repositories.ErrUserNotFound).Once()

	var created *models.User
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once().
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.User)
			created.ID = "acct-1"
		})

	token, err := svc.BeginRegistration(ctx, "alice", "a@x.com", "pw1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Len(t, mail.Sent, 1)
	assert.Equal(t, "a@x.com", mail.Sent[0].Recipient)

	session, err := sessions.Get(ctx, token)
	assert.NoError(t, err)
	assert.Contains(t, mail.Sent[0].Body, session.Code)

	accountID, err := svc.ConfirmRegistration(ctx, token, session.Code)
	assert.NoError(t, err)
	assert.Equal(t, "acct-1", accountID)

	// The stored credential is a hash of the submitted password, never the
	// plaintext itself.
	assert.NotEqual(t, "pw1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw1")))

	// Session is consumed: a second confirmation with the same token cannot
	// create a second account.
	_, err = svc.ConfirmRegistration(ctx, token, session.Code)
	assert.ErrorIs(t, err, services.ErrNoSuchSession)
	_, err = sessions.Get(ctx, token)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestRegistration_WrongCodeKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, sessions, _ := newRegistrationFixture()

	mockRepo.On("GetByUsername", "bob").Return(nil, repositories.ErrUserNotFound).Once()

	token, err := svc.BeginRegistration(ctx, "bob", "b@x.com", "pw2")
	assert.NoError(t, err)

	session, _ := sessions.Get(ctx, token)
	wrongCode := "000000"
	if session.Code == wrongCode {
		wrongCode = "000001"
	}

	_, err = svc.ConfirmRegistration(ctx, token, wrongCode)
	assert.ErrorIs(t, err, services.ErrCodeMismatch)

	// The session survives the failed attempt, so a retry with the right
	// code still works; no account was created in between.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	retained, err := sessions.Get(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, session.Code, retained.Code)
}

func TestRegistration_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, _, mail := newRegistrationFixture()

	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: "acct-1"}, nil).Once()

	_, err := svc.BeginRegistration(ctx, "alice", "other@x.com", "pw")
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
	assert.Empty(t, mail.Sent)
	mockRepo.AssertExpectations(t)
}

func TestRegistration_ExpiredSessionLooksUnknown(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions, _ := newRegistrationFixture()

	err := sessions.Put(ctx, "stale-token", models.RegistrationSession{
		Username: "carol",
		Email:    "c@x.com",
		Password: "pw3",
		Code:     "123456",
		IssuedAt: time.Now().Add(-time.Hour),
	}, -time.Minute)
	assert.NoError(t, err)

	_, err = svc.ConfirmRegistration(ctx, "stale-token", "123456")
	assert.ErrorIs(t, err, services.ErrNoSuchSession)

	// Unknown tokens produce the very same error.
	_, err = svc.ConfirmRegistration(ctx, "never-issued", "123456")
	assert.ErrorIs(t, err, services.ErrNoSuchSession)
}

func TestRegistration_DeliveryFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, sessions, mail := newRegistrationFixture()

	mockRepo.On("GetByUsername", "dave").Return(nil, repositories.ErrUserNotFound).Once()
	mail.FailNext = true

	token, err := svc.BeginRegistration(ctx, "dave", "d@x.com", "pw4")

	var deliveryErr *mailer.DeliveryError
	assert.ErrorAs(t, err, &deliveryErr)
	assert.NotEmpty(t, token)
	// The code must not leak through the error text.
	session, getErr := sessions.Get(ctx, token)
	assert.NoError(t, getErr)
	assert.NotContains(t, err.Error(), session.Code)

	// The session survived the bounce, so a resend can still deliver it.
	assert.NoError(t, svc.ResendCode(ctx, token))
	assert.Len(t, mail.Sent, 1)
	assert.Contains(t, mail.Sent[0].Body, session.Code)
}

func TestRegistration_ResendUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newRegistrationFixture()

	err := svc.ResendCode(ctx, "never-issued")
	assert.ErrorIs(t, err, services.ErrNoSuchSession)
}
