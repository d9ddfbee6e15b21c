package controllers

import (
	"net/http"

	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetFoodImage streams a stored food picture by object name.
func GetFoodImage(c *gin.Context) {
	body, contentType, length, err := utils.GetFoodImage(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Image not found")
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, length, contentType, body, nil)
}
