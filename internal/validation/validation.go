// Package validation holds the credential checks shared by the register,
// login and reset flows, so all three enforce the same policy.
package validation

import (
	"net/mail"
	"regexp"

	"github.com/google/uuid"
)

// Result is the outcome of a single check. Message is user-visible and
// empty when OK.
type Result struct {
	OK      bool
	Message string
}

func ok() Result {
	return Result{OK: true}
}

func fail(msg string) Result {
	return Result{Message: msg}
}

// passwordPattern restricts passwords to word characters, matching the
// constraint registered on the account entity.
var passwordPattern = regexp.MustCompile(`^\w+$`)

const (
	MsgEmailRequired    = "E-mail is required."
	MsgEmailInvalid     = "E-mail address has invalid format."
	MsgPasswordRequired = "Password must not be empty."
	MsgPasswordLength   = "Password must be at least 8 characters long."
	MsgPasswordCharset  = "Password may only contain digits, letters and '_'."
	MsgTokenInvalid     = "Token has invalid format."
)

func Email(email string) Result {
	if email == "" {
		return fail(MsgEmailRequired)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fail(MsgEmailInvalid)
	}
	return ok()
}

func Password(password string) Result {
	if password == "" {
		return fail(MsgPasswordRequired)
	}
	if len(password) < 8 {
		return fail(MsgPasswordLength)
	}
	if !passwordPattern.MatchString(password) {
		return fail(MsgPasswordCharset)
	}
	return ok()
}

// Token checks that a claimed token is a syntactically valid random
// identifier. All account tokens are UUIDv4 strings.
func Token(token string) Result {
	if _, err := uuid.Parse(token); err != nil {
		return fail(MsgTokenInvalid)
	}
	return ok()
}

// Credentials runs the email and password checks together and returns the
// first failure.
func Credentials(email, password string) Result {
	if res := Email(email); !res.OK {
		return res
	}
	return Password(password)
}
