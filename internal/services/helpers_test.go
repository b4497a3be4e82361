package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/damianut/public-InterSynergy/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByIDFunc                func(id uuid.UUID) (*models.User, error)
	getByEmailFunc             func(email string) (*models.User, error)
	getByConfirmationTokenFunc func(token string) (*models.User, error)
	getByResetTokenFunc        func(token string) (*models.User, error)
	createFunc                 func(user *models.User) error
	updateFunc                 func(user *models.User) error
	deleteFunc                 func(id uuid.UUID) error
	getAllFunc                 func() ([]models.User, error)
	existsByEmailFunc          func(email string) (bool, error)
}

func (m *mockUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	if m.getByEmailFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByEmailFunc(email)
}

func (m *mockUserRepo) GetByConfirmationToken(token string) (*models.User, error) {
	if m.getByConfirmationTokenFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByConfirmationTokenFunc(token)
}

func (m *mockUserRepo) GetByResetToken(token string) (*models.User, error) {
	if m.getByResetTokenFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByResetTokenFunc(token)
}

func (m *mockUserRepo) Create(user *models.User) error {
	if m.createFunc == nil {
		return errors.New("not implemented")
	}
	return m.createFunc(user)
}

func (m *mockUserRepo) Update(user *models.User) error {
	if m.updateFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateFunc(user)
}

func (m *mockUserRepo) Delete(id uuid.UUID) error {
	if m.deleteFunc == nil {
		return errors.New("not implemented")
	}
	return m.deleteFunc(id)
}

func (m *mockUserRepo) GetAll() ([]models.User, error) {
	if m.getAllFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getAllFunc()
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	if m.existsByEmailFunc == nil {
		return false, errors.New("not implemented")
	}
	return m.existsByEmailFunc(email)
}

// fakeMailer records every sent message; sendErr makes Send fail.
type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// fakeMirror records the calls and answers with canned messages.
type fakeMirror struct {
	created []uuid.UUID
	updated []uuid.UUID
	deleted []uuid.UUID
	message string
}

func (m *fakeMirror) CreateCandidateMessage(userID uuid.UUID, email string) string {
	m.created = append(m.created, userID)
	return m.message
}

func (m *fakeMirror) UpdateCandidateMessage(fullName string, userID uuid.UUID) string {
	m.updated = append(m.updated, userID)
	return m.message
}

func (m *fakeMirror) DeleteCandidateMessage(userID uuid.UUID) string {
	m.deleted = append(m.deleted, userID)
	return m.message
}

// fakeStorage keeps stored names in memory.
type fakeStorage struct {
	saved   []string
	removed []string
	saveErr error
	rmErr   error
}

func (s *fakeStorage) Save(ctx context.Context, att *storage.Attachment) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	name := "stored-" + att.OriginalName
	s.saved = append(s.saved, name)
	return name, nil
}

func (s *fakeStorage) Remove(ctx context.Context, storedName string) error {
	if s.rmErr != nil {
		return s.rmErr
	}
	s.removed = append(s.removed, storedName)
	return nil
}

var testClock = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestFlow(repo *mockUserRepo, mail *fakeMailer, mirror *fakeMirror, store *fakeStorage) services.FlowContext {
	return services.FlowContext{
		Users:           repo,
		Mailer:          mail,
		Mirror:          mirror,
		Storage:         store,
		BaseURL:         "http://localhost:8080",
		MaxFailedLogins: 3,
		ReloginWindow:   10 * time.Minute,
		Now:             func() time.Time { return testClock },
	}
}

func hashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func strPtr(s string) *string { return &s }

func enabledUser(email, password string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		Roles:        []string{models.RoleUser},
		PasswordHash: hashPassword(password),
		Enabled:      true,
	}
}

func flashMessages(fl *services.Flashes) []string {
	items := fl.Items()
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		msgs = append(msgs, it.Message)
	}
	return msgs
}
