package services

import (
	"log/slog"
	"net/url"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/session"
	"github.com/damianut/public-InterSynergy/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the login state machine: strict form-shape checking,
// the relogin window guard, the failed-login counter with its banning
// policy, session issuance and session validation.
type AuthService struct {
	flow FlowContext
}

func NewAuthService(flow FlowContext) *AuthService {
	return &AuthService{flow: flow}
}

// Login runs the full login attempt in the original short-circuit order.
// On success it returns the freshly issued session triple.
func (s *AuthService) Login(form url.Values, fl *Flashes) (session.State, bool) {
	// The login form carries exactly two fields with exact names; any
	// other shape is treated as a tamper attempt.
	if len(form) != 2 || !form.Has("login-email") || !form.Has("login-password") {
		fl.Error(MsgOtherError)
		return session.State{}, false
	}
	email := form.Get("login-email")
	password := form.Get("login-password")

	// Format failures and unknown accounts share one generic message so
	// the response does not leak which e-mails are registered.
	if res := validation.Credentials(email, password); !res.OK {
		fl.Error(MsgLoginEmailPwdFail)
		return session.State{}, false
	}
	user, err := s.flow.Users.GetByEmail(email)
	if err != nil || user == nil {
		fl.Error(MsgLoginEmailPwdFail)
		return session.State{}, false
	}

	if s.tokenStillFresh(user) {
		fl.Error(MsgLoginAgainLater)
		return session.State{}, false
	}
	if !user.Enabled {
		fl.Error(MsgAccountDisabled)
		return session.State{}, false
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		fl.Error(MsgPasswordMismatch)
		s.failedAuthentication(user, fl)
		return session.State{}, false
	}

	// Counter reset and login stamp; a write failure here is recoverable
	// and must not abort the login.
	user.FailedLogin = 0
	now := s.flow.now()
	user.LoginDate = &now
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgLoginUpdateFail)
	}

	template := destinationTemplate(user)
	if template == "" {
		fl.Error(MsgRole403)
		return session.State{}, false
	}

	return s.createSession(user, template, fl)
}

// ValidateSession checks a claimed session triple against the stored
// account. Any failure means the whole session is suspect; the caller
// clears it and forces a fresh login.
func (s *AuthService) ValidateSession(state session.State) (*models.User, bool) {
	if !state.Complete() {
		return nil, false
	}
	if res := validation.Email(state.Email); !res.OK {
		return nil, false
	}
	if res := validation.Token(state.Token); !res.OK {
		return nil, false
	}
	if !session.ValidTemplate(state.Template) {
		return nil, false
	}
	user, err := s.flow.Users.GetByEmail(state.Email)
	if err != nil || user == nil {
		return nil, false
	}
	if destinationTemplate(user) != state.Template {
		return nil, false
	}
	if user.LoggedToken == nil || *user.LoggedToken != state.Token {
		return nil, false
	}
	return user, true
}

// Logout invalidates the stored session token for the account matching
// the session e-mail. The session cookies are cleared by the caller
// regardless of the result.
func (s *AuthService) Logout(state session.State, fl *Flashes) {
	user, err := s.flow.Users.GetByEmail(state.Email)
	if err == nil && user != nil {
		user.LoggedToken = nil
		if err := s.flow.Users.Update(user); err != nil {
			slog.Error("clearing session token failed", "error", err)
		}
		fl.Info(MsgLogoutSuccess)
		return
	}
	fl.Info(MsgLogoutNothing)
}

// InvalidateToken drops the stored session token without a message. Used
// when session validation fails and the account must be forced to log in
// again.
func (s *AuthService) InvalidateToken(email string) {
	user, err := s.flow.Users.GetByEmail(email)
	if err != nil || user == nil {
		return
	}
	user.LoggedToken = nil
	if err := s.flow.Users.Update(user); err != nil {
		slog.Error("invalidating session token failed", "error", err)
	}
}

// tokenStillFresh reports whether the account holds a session token
// issued less than the relogin window ago. Such a login attempt is
// rejected as a replay/concurrency guard; an older token is silently
// refreshed by the new login.
func (s *AuthService) tokenStillFresh(user *models.User) bool {
	if user.LoggedToken == nil || user.LoginDate == nil {
		return false
	}
	return s.flow.now().Sub(*user.LoginDate) < s.flow.ReloginWindow
}

// failedAuthentication increments the failed-login counter and bans the
// account when the incremented value reaches the configured limit. The
// ban stands even when the unlock e-mail cannot be delivered.
func (s *AuthService) failedAuthentication(user *models.User, fl *Flashes) {
	user.FailedLogin++
	user.EntryUpdatingDate = s.flow.now()
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgUpdateErr)
	}

	if user.FailedLogin >= s.flow.MaxFailedLogins {
		token := uuid.NewString()
		user.Enabled = false
		user.BlockedConfirmationToken = &token
		user.EntryUpdatingDate = s.flow.now()
		if err := s.flow.Users.Update(user); err != nil {
			fl.Error(MsgUpdateErr)
			return
		}

		link := s.flow.absoluteURL("/main-page", token)
		if err := s.flow.Mailer.Send(user.Email, mailBannedTitle, mailBannedBody+link); err != nil {
			slog.Error("ban notification not delivered", "email", user.Email, "error", err)
			fl.Error(MsgBannedEmailFail)
			return
		}
		fl.Error(MsgBannedEmailSent)
	}
}

// createSession issues a new opaque token, overwrites the stored one and
// stamps the login date. Re-issuance invalidates any session still using
// the previous token.
func (s *AuthService) createSession(user *models.User, template string, fl *Flashes) (session.State, bool) {
	token := uuid.NewString()
	now := s.flow.now()
	user.LoggedToken = &token
	user.LoginDate = &now
	if err := s.flow.Users.Update(user); err != nil {
		fl.Error(MsgUpdateErr)
		return session.State{}, false
	}
	return session.State{
		Email:    user.Email,
		Token:    token,
		Template: template,
	}, true
}

// destinationTemplate maps the highest role to the landing area the
// session is scoped to. Empty means no recognized role.
func destinationTemplate(user *models.User) string {
	switch user.HighestRole() {
	case models.RoleAdmin:
		return session.TemplateAdmin
	case models.RoleUser:
		return session.TemplateUser
	default:
		return ""
	}
}
