package controllers

import (
	"net/http"
	"time"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/damianut/public-InterSynergy/internal/session"
	"github.com/damianut/public-InterSynergy/internal/storage"
	"github.com/gin-gonic/gin"
)

// AuthController handles the public account routes: landing page with
// activation, registration, login, logout and the password reset pair.
type AuthController struct {
	authService    *services.AuthService
	accountService *services.AccountService
}

func NewAuthController(authService *services.AuthService, accountService *services.AccountService) *AuthController {
	return &AuthController{
		authService:    authService,
		accountService: accountService,
	}
}

// MainPage - GET /main-page
// The anonymous landing route. A complete session redirects to the
// panel; an activation token in the query is consumed here.
func (ac *AuthController) MainPage(c *gin.Context) {
	state := session.Read(c)
	if state.Complete() {
		if _, ok := ac.authService.ValidateSession(state); ok {
			c.JSON(http.StatusOK, gin.H{"redirect": panelRoute(state.Template)})
			return
		}
		ac.authService.InvalidateToken(state.Email)
		session.Clear(c)
		c.JSON(http.StatusOK, gin.H{
			"flashes": []services.Flash{{Kind: "error", Message: services.MsgSessionInvalid}},
		})
		return
	}

	fl := &services.Flashes{}
	if token := c.Query("token"); token != "" {
		fl.Info(ac.accountService.Activate(token))
	}
	c.JSON(http.StatusOK, gin.H{"flashes": fl.Items()})
}

// Register - POST /register-account
func (ac *AuthController) Register(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"flashes": []services.Flash{{Kind: "error", Message: services.MsgOtherError}},
		})
		return
	}
	fl := &services.Flashes{}
	created := ac.accountService.Register(c.Request.PostForm, fl)

	status := http.StatusOK
	if !created {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"flashes": fl.Items(), "redirect": "/main-page"})
}

// LoginAccount - GET/POST /login-account
// Without a session, a POST here is a login attempt. With a valid
// session, the route serves the user panel: GET returns the profile,
// POST applies a profile update.
func (ac *AuthController) LoginAccount(c *gin.Context) {
	state := session.Read(c)
	if !state.Complete() {
		session.Clear(c)
		ac.handleLogin(c)
		return
	}

	user, ok := ac.authService.ValidateSession(state)
	if !ok {
		ac.authService.InvalidateToken(state.Email)
		session.Clear(c)
		c.JSON(http.StatusUnauthorized, gin.H{
			"flashes":  []services.Flash{{Kind: "error", Message: services.MsgSessionInvalid}},
			"redirect": "/main-page",
		})
		return
	}
	if state.Template == session.TemplateAdmin {
		c.JSON(http.StatusOK, gin.H{"redirect": "/admin-panel"})
		return
	}

	if c.Request.Method == http.MethodPost {
		ac.handleProfileUpdate(c, user)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) handleLogin(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusOK, gin.H{"flashes": []services.Flash{}})
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"flashes": []services.Flash{{Kind: "error", Message: services.MsgOtherError}},
		})
		return
	}

	fl := &services.Flashes{}
	state, ok := ac.authService.Login(c.Request.PostForm, fl)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"flashes": fl.Items(), "redirect": "/main-page"})
		return
	}
	session.Write(c, state)
	c.JSON(http.StatusOK, gin.H{
		"flashes":  fl.Items(),
		"redirect": panelRoute(state.Template),
	})
}

func (ac *AuthController) handleProfileUpdate(c *gin.Context, user *models.User) {
	fl := &services.Flashes{}
	in := bindProfileUpdate(c)
	ok := ac.accountService.UpdateProfile(c.Request.Context(), user, in, fl)

	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"flashes": fl.Items(), "redirect": "/successful"})
}

// Logout - GET /logout
// The cookies are cleared even when no matching account exists.
func (ac *AuthController) Logout(c *gin.Context) {
	state := session.Read(c)
	fl := &services.Flashes{}
	ac.authService.Logout(state, fl)
	session.Clear(c)
	c.JSON(http.StatusOK, gin.H{"flashes": fl.Items(), "redirect": "/main-page"})
}

// Resetter - POST /resetter
func (ac *AuthController) Resetter(c *gin.Context) {
	fl := &services.Flashes{}
	ac.accountService.ResetRequest(c.PostForm("resetter-email"), fl)
	// The final message already reflects the outcome; the route always
	// lands back on the main page.
	c.JSON(http.StatusOK, gin.H{"flashes": fl.Items(), "redirect": "/main-page"})
}

// ResetterToken - GET/POST /use-resetter-token
// GET checks the token and renders the change form; POST applies the
// new password pair.
func (ac *AuthController) ResetterToken(c *gin.Context) {
	token := c.Query("token")
	fl := &services.Flashes{}

	if c.Request.Method == http.MethodGet {
		if ok := ac.accountService.CheckResetToken(token, fl); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"flashes": fl.Items(), "redirect": "/main-page"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
		return
	}

	ok := ac.accountService.ResetFulfill(
		token,
		c.PostForm("new-password"),
		c.PostForm("repeat-password"),
		fl,
	)
	status := http.StatusOK
	if !ok {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"flashes": fl.Items(), "redirect": "/main-page"})
}

// Successful - GET /successful
// Displayed after the user changes data.
func (ac *AuthController) Successful(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Data saved."})
}

func panelRoute(template string) string {
	if template == session.TemplateAdmin {
		return "/admin-panel"
	}
	return "/login-account"
}

// bindProfileUpdate extracts the optional profile fields of the panel
// form; only the submitted fields are applied.
func bindProfileUpdate(c *gin.Context) services.ProfileUpdate {
	in := services.ProfileUpdate{
		Name:              optionalField(c, "name"),
		Surname:           optionalField(c, "surname"),
		PESEL:             optionalField(c, "pesel"),
		NIP:               optionalField(c, "nip"),
		Address:           optionalField(c, "address"),
		PersonDescription: optionalField(c, "person_description"),
		Interests:         optionalField(c, "interests"),
		Skills:            optionalField(c, "skills"),
		Experience:        optionalField(c, "experience"),
		RetainCV:          c.PostForm("retain") != "",
	}

	if birth, ok := c.GetPostForm("birth_date"); ok && birth != "" {
		if parsed, err := time.Parse("2006-01-02", birth); err == nil {
			in.BirthDate = &parsed
		}
	}

	if header, err := c.FormFile("cv"); err == nil {
		if file, err := header.Open(); err == nil {
			in.CV = &storage.Attachment{
				OriginalName: header.Filename,
				ContentType:  header.Header.Get("Content-Type"),
				Size:         header.Size,
				Reader:       file,
			}
		}
	}
	return in
}

func optionalField(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}
