package controllers

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/middlewares"
	"github.com/UmaKase/umakase-backend/models"
	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	profileID := c.GetString(middlewares.ProfileIDKey)
	profile, err := services.ProfileByID(profileID)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "User not found")
		return
	}
	utils.RespondOK(c, "User information in body", gin.H{"profile": profile})
}

type UpdateProfileInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID := c.GetString(middlewares.ProfileIDKey)
	var profile models.Profile
	if err := config.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "User not found")
		return
	}

	if input.Firstname != "" {
		profile.Firstname = input.Firstname
	}
	if input.Lastname != "" {
		profile.Lastname = input.Lastname
	}
	if err := config.DB.Save(&profile).Error; err != nil {
		config.Logger.Errorw("profile update failed", "profileId", profileID, "error", err)
		utils.RespondError(c, http.StatusBadRequest, "Update user information error")
		return
	}

	utils.RespondOK(c, "Updated", nil)
}

type UpdateEmailInput struct {
	Email string `json:"email" binding:"required"`
}

func UpdateEmail(c *gin.Context) {
	var input UpdateEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email not valid")
		return
	}

	profileID := c.GetString(middlewares.ProfileIDKey)
	var profile models.Profile
	if err := config.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "User not found!")
		return
	}

	err := config.DB.Model(&models.User{}).Where("id = ?", profile.UserID).
		Update("email", input.Email).Error
	if err != nil {
		config.Logger.Errorw("email update failed", "profileId", profileID, "error", err)
		utils.RespondError(c, http.StatusBadRequest, "Update failed")
		return
	}

	utils.RespondOK(c, "Updated Successfully", nil)
}

func SearchUsers(c *gin.Context) {
	query := c.Query("query")

	var profiles []models.Profile
	like := "%" + query + "%"
	err := config.DB.
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.firstname LIKE ? OR profiles.lastname LIKE ? OR profiles.username LIKE ? OR users.email LIKE ?",
			like, like, like, like).
		Find(&profiles).Error
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Search failed")
		return
	}

	utils.RespondOK(c, "Found!", gin.H{"profiles": profiles})
}

type MergeInput struct {
	TmpID   string `json:"tmpId" binding:"required"`
	TmpPass string `json:"tmpPass" binding:"required"`
}

// MergeTempUser folds a guest account into the authenticated profile.
// Any partial failure is rolled back and reported as a gateway error.
func MergeTempUser(c *gin.Context) {
	var input MergeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID := c.GetString(middlewares.ProfileIDKey)
	profile, err := services.MergeTempUser(profileID, input.TmpID, input.TmpPass)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusBadRequest, "Username or password not correct")
		return
	case errors.Is(err, services.ErrProfileNotFound):
		utils.RespondError(c, http.StatusUnauthorized, "New user is not created correctly, please contact developer")
		return
	case errors.Is(err, services.ErrRoomNotFound):
		utils.RespondError(c, http.StatusBadRequest, "Temporary user's default room not found")
		return
	case err != nil:
		config.Logger.Errorw("temp user merge failed", "profileId", profileID, "error", err)
		utils.RespondError(c, http.StatusBadGateway, "Merge failed, nothing was changed")
		return
	}

	utils.RespondOK(c, "User Merged", gin.H{"mergedUser": profile})
}
