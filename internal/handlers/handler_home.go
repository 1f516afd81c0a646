package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Health check
// @Description Reports that the API is up.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Bookstore back-office API is running"})
}
