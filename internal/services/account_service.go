package services

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/storage"
	"github.com/damianut/public-InterSynergy/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountService owns the account lifecycle outside of login:
// registration, activation, password reset and profile updates.
type AccountService struct {
	flow FlowContext
}

func NewAccountService(flow FlowContext) *AccountService {
	return &AccountService{flow: flow}
}

// Register creates a disabled account with a confirmation token. The
// account is persisted regardless of the activation-mail and mirror
// outcomes, which only shape the notices.
func (s *AccountService) Register(form url.Values, fl *Flashes) bool {
	// Exactly two fields with exact names; any deviation is a tamper
	// attempt and gets the generic rejection.
	if len(form) != 2 || !form.Has("user-email") || !form.Has("user-password") {
		fl.Error(MsgOtherError)
		return false
	}
	email := form.Get("user-email")
	password := form.Get("user-password")

	if res := validation.Email(email); !res.OK {
		fl.Error(res.Message)
		return false
	}
	if res := validation.Password(password); !res.OK {
		fl.Error(res.Message)
		return false
	}

	busy, err := s.flow.Users.ExistsByEmail(email)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if busy {
		fl.Error(MsgRegisterEmailBusy)
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}

	token := uuid.NewString()
	now := s.flow.now()
	user := &models.User{
		Email:                    email,
		PasswordHash:             string(hash),
		Roles:                    []string{models.RoleUser},
		Enabled:                  false,
		FailedLogin:              0,
		RegistrationDate:         now,
		EntryUpdatingDate:        now,
		BlockedConfirmationToken: &token,
	}
	if err := s.flow.Users.Create(user); err != nil {
		fl.Error(MsgOtherError)
		return false
	}

	link := s.flow.absoluteURL("/main-page", token)
	if err := s.flow.Mailer.Send(email, mailActivateTitle, mailActivateBody+link); err != nil {
		slog.Error("activation mail not delivered", "email", email, "error", err)
		fl.Error(MsgRegisterEmailFail)
	} else {
		fl.Notice(MsgRegisterCreated)
	}

	if msg := s.flow.Mirror.CreateCandidateMessage(user.ID, email); msg != "" {
		fl.Info(msg)
	}
	return true
}

// Activate consumes a confirmation token: the matched account is enabled,
// its counter reset and the token cleared. A second attempt with the
// now-null token reports "not found" again.
func (s *AccountService) Activate(token string) string {
	if res := validation.Token(token); !res.OK {
		return res.Message
	}
	user, err := s.flow.Users.GetByConfirmationToken(token)
	if err != nil {
		return MsgActivateFail
	}
	if user == nil {
		return MsgActivateToken404
	}
	user.BlockedConfirmationToken = nil
	user.Enabled = true
	user.FailedLogin = 0
	if err := s.flow.Users.Update(user); err != nil {
		return MsgActivateFail
	}
	return MsgActivateSuccess
}

// ResetRequest grants a reset token when the account exists, is enabled
// and holds no outstanding token; one reset in flight at a time.
func (s *AccountService) ResetRequest(email string, fl *Flashes) bool {
	if email == "" {
		fl.Error(MsgResetterEmailBlank)
		return false
	}
	if res := validation.Email(email); !res.OK {
		fl.Error(res.Message)
		return false
	}
	user, err := s.flow.Users.GetByEmail(email)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if user == nil {
		fl.Error(MsgResetterEmail404)
		return false
	}
	if !user.Enabled {
		fl.Error(MsgAccountDisabled)
		return false
	}
	if user.ResetToken != nil {
		fl.Error(MsgResetTokenExists)
		return false
	}

	token := uuid.NewString()
	user.ResetToken = &token
	user.EntryUpdatingDate = s.flow.now()
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgUpdateErr)
		return false
	}

	link := s.flow.absoluteURL("/use-resetter-token", token)
	if err := s.flow.Mailer.Send(email, mailResetTitle, mailResetBody+link); err != nil {
		slog.Error("reset mail not delivered", "email", email, "error", err)
		fl.Error(MsgResetterEmailFail)
		return false
	}
	fl.Notice(MsgResetterEmailSent)
	return true
}

// CheckResetToken verifies that a reset token is well-formed and bound
// to an account, without consuming it. Used to decide whether the change
// form may be shown.
func (s *AccountService) CheckResetToken(token string, fl *Flashes) bool {
	if res := validation.Token(token); !res.OK {
		fl.Error(res.Message)
		return false
	}
	user, err := s.flow.Users.GetByResetToken(token)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if user == nil {
		fl.Error(MsgResetterToken404)
		return false
	}
	return true
}

// ResetFulfill consumes a reset token and stores the new password. Any
// failure aborts before mutating the account.
func (s *AccountService) ResetFulfill(token, newPassword, repeatPassword string, fl *Flashes) bool {
	if res := validation.Token(token); !res.OK {
		fl.Error(res.Message)
		return false
	}
	user, err := s.flow.Users.GetByResetToken(token)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if user == nil {
		fl.Error(MsgResetterToken404)
		return false
	}
	if res := validation.Password(newPassword); !res.OK {
		fl.Error(res.Message)
		return false
	}
	if res := validation.Password(repeatPassword); !res.OK {
		fl.Error(res.Message)
		return false
	}
	if newPassword != repeatPassword {
		fl.Error(MsgPwdCompareFail)
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	user.ResetToken = nil
	user.PasswordHash = string(hash)
	user.EntryUpdatingDate = s.flow.now()
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgUpdateErr)
		return false
	}
	fl.Notice(MsgResetterSuccess)
	return true
}

// ProfileUpdate carries the editable profile fields of the user panel.
// Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	Name              *string
	Surname           *string
	PESEL             *string
	NIP               *string
	Address           *string
	PersonDescription *string
	Interests         *string
	Skills            *string
	Experience        *string
	BirthDate         *time.Time
	Rating            *int

	// RetainCV mirrors the panel checkbox: unchecked with a stored CV
	// removes it, checked with an upload replaces it.
	RetainCV bool
	CV       *storage.Attachment
}

// UpdateProfile saves the panel fields and handles the CV attachment.
// Attachment failures become notices; they never roll back the profile
// write. A name or surname change is propagated to the mirror store.
func (s *AccountService) UpdateProfile(ctx context.Context, user *models.User, in ProfileUpdate, fl *Flashes) bool {
	beforeName := user.FullName()

	s.applyCV(ctx, user, in, fl)
	applyProfileFields(user, in)
	user.EntryUpdatingDate = s.flow.now()
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgUpdateErr)
		return false
	}

	if afterName := user.FullName(); afterName != beforeName {
		if msg := s.flow.Mirror.UpdateCandidateMessage(afterName, user.ID); msg != "" {
			fl.Info(msg)
		}
	}
	fl.Notice(MsgProfileUpdated)
	return true
}

// applyCV handles the three attachment cases: remove a stored CV, replace
// it with an upload, or report that there is nothing to remove.
func (s *AccountService) applyCV(ctx context.Context, user *models.User, in ProfileUpdate, fl *Flashes) {
	switch {
	case !in.RetainCV && user.CVFilename != nil:
		if err := s.flow.Storage.Remove(ctx, *user.CVFilename); err != nil {
			slog.Error("cv removal failed", "file", *user.CVFilename, "error", err)
			fl.Error(MsgPDFRemoveFail)
			return
		}
		user.CVFilename = nil
		fl.Notice(MsgPDFRemoved)
	case in.RetainCV && in.CV != nil:
		stored, err := s.flow.Storage.Save(ctx, in.CV)
		if err != nil {
			slog.Error("cv upload failed", "error", err)
			fl.Error(MsgPDFUploadFail)
			return
		}
		user.CVFilename = &stored
	case !in.RetainCV && user.CVFilename == nil:
		fl.Notice(MsgPDF404)
	}
}

func applyProfileFields(user *models.User, in ProfileUpdate) {
	if in.Name != nil {
		user.Name = in.Name
	}
	if in.Surname != nil {
		user.Surname = in.Surname
	}
	if in.PESEL != nil {
		user.PESEL = in.PESEL
	}
	if in.NIP != nil {
		user.NIP = in.NIP
	}
	if in.Address != nil {
		user.Address = in.Address
	}
	if in.PersonDescription != nil {
		user.PersonDescription = in.PersonDescription
	}
	if in.Interests != nil {
		user.Interests = in.Interests
	}
	if in.Skills != nil {
		user.Skills = in.Skills
	}
	if in.Experience != nil {
		user.Experience = in.Experience
	}
	if in.BirthDate != nil {
		user.BirthDate = in.BirthDate
	}
	if in.Rating != nil {
		user.Rating = in.Rating
	}
}
