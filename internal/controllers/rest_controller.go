package controllers

import (
	"net/http"

	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/gin-gonic/gin"
)

// RestController serves the read-only query API.
type RestController struct {
	restService *services.RestService
}

func NewRestController(restService *services.RestService) *RestController {
	return &RestController{restService: restService}
}

const restUsage = "Query accounts with /rest?user= (all), /rest?user=<id> or /rest?user=<email>."

// Query - GET /rest
// A malformed query and an unmatched identifier both fall back to the
// usage description.
func (rc *RestController) Query(c *gin.Context) {
	users, ok := rc.restService.QueryUsers(c.Request.URL.Query())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"usage": restUsage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
