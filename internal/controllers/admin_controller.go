package controllers

import (
	"net/http"
	"strconv"

	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminController handles the admin panel routes. All of them run behind
// the session middleware plus the admin-template gate.
type AdminController struct {
	adminService *services.AdminService
}

func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// AdminPanel - GET /admin-panel
func (ad *AdminController) AdminPanel(c *gin.Context) {
	users, err := ad.adminService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"flashes": []services.Flash{{Kind: "error", Message: services.MsgOtherError}},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser - POST /create-user
func (ad *AdminController) CreateUser(c *gin.Context) {
	fl := &services.Flashes{}
	in := services.AdminCreateInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Role:     c.PostForm("role"),
		Profile:  bindProfileUpdate(c),
	}
	in.Profile.Rating = optionalRating(c)

	ok := ad.adminService.CreateUser(c.Request.Context(), in, fl)
	status := http.StatusOK
	if !ok {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"flashes": fl.Items(), "redirect": "/admin-panel"})
}

// EditUser - GET/POST /edit-user
// GET returns the current account data for the form; POST applies the
// submitted changes.
func (ad *AdminController) EditUser(c *gin.Context) {
	fl := &services.Flashes{}
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"flashes":  []services.Flash{{Kind: "error", Message: services.MsgAdminBadID}},
			"redirect": "/admin-panel",
		})
		return
	}

	if c.Request.Method == http.MethodGet {
		ad.renderEditForm(c, id)
		return
	}

	in := services.AdminEditInput{
		Role:     c.PostForm("role"),
		Password: c.PostForm("password"),
		Profile:  bindProfileUpdate(c),
	}
	in.Profile.Rating = optionalRating(c)

	applied := ad.adminService.EditUser(c.Request.Context(), id, in, fl)
	status := http.StatusOK
	if !applied {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"flashes": fl.Items(), "redirect": "/admin-panel"})
}

// DeleteUser - POST /delete-user
func (ad *AdminController) DeleteUser(c *gin.Context) {
	fl := &services.Flashes{}
	id, ok := userID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"flashes":  []services.Flash{{Kind: "error", Message: services.MsgAdminBadID}},
			"redirect": "/admin-panel",
		})
		return
	}

	deleted := ad.adminService.DeleteUser(c.Request.Context(), id, fl)
	status := http.StatusOK
	if !deleted {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"flashes": fl.Items(), "redirect": "/admin-panel"})
}

func (ad *AdminController) renderEditForm(c *gin.Context, id uuid.UUID) {
	user, err := ad.adminService.GetUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"flashes": []services.Flash{{Kind: "error", Message: services.MsgOtherError}},
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"flashes":  []services.Flash{{Kind: "error", Message: services.MsgAdminUser404}},
			"redirect": "/admin-panel",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// userID reads the target account id from the form or the query string.
func userID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.PostForm("user_id")
	if raw == "" {
		raw = c.Query("user_id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func optionalRating(c *gin.Context) *int {
	raw, ok := c.GetPostForm("rating")
	if !ok || raw == "" {
		return nil
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		// Out-of-range values are caught by the service; a non-number
		// is reported the same way.
		rating = 0
	}
	return &rating
}
