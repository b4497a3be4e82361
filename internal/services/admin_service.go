package services

import (
	"context"
	"log/slog"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminService backs the admin panel: listing, creating, editing and
// deleting user accounts.
type AdminService struct {
	flow FlowContext
}

func NewAdminService(flow FlowContext) *AdminService {
	return &AdminService{flow: flow}
}

// UserSummary is the row shape of the admin panel listing.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Enabled     bool      `json:"enabled"`
	FailedLogin int       `json:"failed_login"`
	Name        *string   `json:"name"`
	Surname     *string   `json:"surname"`
}

func (s *AdminService) ListUsers() ([]UserSummary, error) {
	users, err := s.flow.Users.GetAll()
	if err != nil {
		return nil, err
	}
	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		u := &users[i]
		summaries = append(summaries, UserSummary{
			ID:          u.ID,
			Email:       u.Email,
			Enabled:     u.Enabled,
			FailedLogin: u.FailedLogin,
			Name:        u.Name,
			Surname:     u.Surname,
		})
	}
	return summaries, nil
}

// GetUser loads a single account for the edit form. A missing account
// returns (nil, nil).
func (s *AdminService) GetUser(id uuid.UUID) (*models.User, error) {
	return s.flow.Users.GetByID(id)
}

// AdminCreateInput carries the admin create-user form. Role is the raw
// form value and is normalized here.
type AdminCreateInput struct {
	Email    string
	Password string
	Role     string
	Profile  ProfileUpdate
}

// CreateUser creates an account that is enabled immediately, unlike
// self-registration.
func (s *AdminService) CreateUser(ctx context.Context, in AdminCreateInput, fl *Flashes) bool {
	if res := validation.Email(in.Email); !res.OK {
		fl.Error(res.Message)
		return false
	}
	if res := validation.Password(in.Password); !res.OK {
		fl.Error(res.Message)
		return false
	}
	busy, err := s.flow.Users.ExistsByEmail(in.Email)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if busy {
		fl.Error(MsgRegisterEmailBusy)
		return false
	}

	roles, ok := normalizeRoles(in.Role)
	if !ok {
		fl.Error(MsgAdminBadRole)
		return false
	}
	if !ratingInBounds(in.Profile.Rating) {
		fl.Error(MsgAdminBadRating)
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}

	now := s.flow.now()
	user := &models.User{
		Email:             in.Email,
		PasswordHash:      string(hash),
		Roles:             roles,
		Enabled:           true,
		FailedLogin:       0,
		RegistrationDate:  now,
		EntryUpdatingDate: now,
		LoginDate:         &now,
	}
	applyProfileFields(user, in.Profile)

	if in.Profile.CV != nil {
		stored, err := s.flow.Storage.Save(ctx, in.Profile.CV)
		if err != nil {
			slog.Error("cv upload failed", "error", err)
			fl.Error(MsgPDFUploadFail)
		} else {
			user.CVFilename = &stored
		}
	}

	if err := s.flow.Users.Create(user); err != nil {
		fl.Error(MsgOtherError)
		return false
	}

	if msg := s.flow.Mirror.CreateCandidateMessage(user.ID, user.Email); msg != "" {
		fl.Info(msg)
	}
	fl.Notice(MsgAdminCreated)
	return true
}

// AdminEditInput carries the admin edit-user form. An empty Role keeps
// the stored role set; the password sentinel "n" keeps the stored hash.
type AdminEditInput struct {
	Role     string
	Password string
	Profile  ProfileUpdate
}

func (s *AdminService) EditUser(ctx context.Context, id uuid.UUID, in AdminEditInput, fl *Flashes) bool {
	user, err := s.flow.Users.GetByID(id)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if user == nil {
		fl.Error(MsgAdminUser404)
		return false
	}

	if in.Role != "" {
		roles, ok := normalizeRoles(in.Role)
		if !ok {
			fl.Error(MsgAdminBadRole)
			return false
		}
		user.Roles = roles
	}
	if in.Password != "n" {
		if res := validation.Password(in.Password); !res.OK {
			fl.Error(res.Message)
			return false
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			fl.Error(MsgOtherError)
			return false
		}
		user.PasswordHash = string(hash)
	}
	if !ratingInBounds(in.Profile.Rating) {
		fl.Error(MsgAdminBadRating)
		return false
	}

	beforeName := user.FullName()
	errsBefore := fl.errorCount()

	s.accountSvc().applyCV(ctx, user, in.Profile, fl)
	applyProfileFields(user, in.Profile)
	user.EntryUpdatingDate = s.flow.now()
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgUpdateErr)
		return false
	}

	mirrorTouched := false
	if afterName := user.FullName(); afterName != beforeName {
		if msg := s.flow.Mirror.UpdateCandidateMessage(afterName, user.ID); msg != "" {
			fl.Info(msg)
			mirrorTouched = true
		}
	}
	if mirrorTouched || fl.errorCount() > errsBefore {
		fl.Notice(MsgProfilePartial)
	} else {
		fl.Notice(MsgProfileUpdated)
	}
	return true
}

// DeleteUser removes the account, its stored CV and the mirror row. A CV
// or mirror failure does not keep the account row alive.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID, fl *Flashes) bool {
	user, err := s.flow.Users.GetByID(id)
	if err != nil {
		fl.Error(MsgOtherError)
		return false
	}
	if user == nil {
		fl.Error(MsgAdminUser404)
		return false
	}

	if user.CVFilename != nil {
		if err := s.flow.Storage.Remove(ctx, *user.CVFilename); err != nil {
			slog.Error("cv removal failed", "file", *user.CVFilename, "error", err)
			fl.Error(MsgPDFRemoveFail)
		}
	}

	if err := s.flow.Users.Delete(id); err != nil {
		fl.Error(MsgOtherError)
		return false
	}

	if msg := s.flow.Mirror.DeleteCandidateMessage(id); msg != "" {
		fl.Info(msg)
	}
	return true
}

func (s *AdminService) accountSvc() *AccountService {
	return &AccountService{flow: s.flow}
}

// normalizeRoles maps the form's role choice onto the stored role set:
// every account keeps the base role, an admin gets both.
func normalizeRoles(role string) ([]string, bool) {
	switch role {
	case models.RoleAdmin:
		return []string{models.RoleUser, models.RoleAdmin}, true
	case models.RoleUser:
		return []string{models.RoleUser}, true
	default:
		return nil, false
	}
}

func ratingInBounds(rating *int) bool {
	return rating == nil || (*rating >= 1 && *rating <= 10)
}
