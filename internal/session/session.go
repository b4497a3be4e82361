// Package session carries the client session triple through each request.
// The three values travel as cookies; the service layer works on the
// State value only, so tests never need a simulated cookie jar.
package session

import (
	"github.com/gin-gonic/gin"
)

const (
	TemplateAdmin = "admin-page"
	TemplateUser  = "user-page"
)

const (
	cookieEmail    = "is_email"
	cookieToken    = "is_logged_token"
	cookieTemplate = "is_template"

	cookieMaxAge = 12 * 60 * 60
)

// State is the session-resident triple. All three values are required
// together; partial presence reads as no session.
type State struct {
	Email    string
	Token    string
	Template string
}

// Complete reports whether every session attribute is present.
func (s State) Complete() bool {
	return s.Email != "" && s.Token != "" && s.Template != ""
}

func ValidTemplate(template string) bool {
	return template == TemplateAdmin || template == TemplateUser
}

// Read extracts the session triple from request cookies. Missing cookies
// leave the corresponding field empty.
func Read(c *gin.Context) State {
	email, _ := c.Cookie(cookieEmail)
	token, _ := c.Cookie(cookieToken)
	template, _ := c.Cookie(cookieTemplate)
	return State{Email: email, Token: token, Template: template}
}

// Write stores the session triple on the response.
func Write(c *gin.Context, s State) {
	c.SetCookie(cookieEmail, s.Email, cookieMaxAge, "/", "", false, true)
	c.SetCookie(cookieToken, s.Token, cookieMaxAge, "/", "", false, true)
	c.SetCookie(cookieTemplate, s.Template, cookieMaxAge, "/", "", false, true)
}

// Clear drops every session cookie.
func Clear(c *gin.Context) {
	c.SetCookie(cookieEmail, "", -1, "/", "", false, true)
	c.SetCookie(cookieToken, "", -1, "/", "", false, true)
	c.SetCookie(cookieTemplate, "", -1, "/", "", false, true)
}
