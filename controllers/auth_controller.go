package controllers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/UmaKase/umakase-backend/middlewares"
	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	IsTemp    bool     `json:"isTemp"`
	FoodIDs   []string `json:"foodIds"`
}

// Register creates a permanent account, or a temporary one when
// isTemp is set. Temp registration skips field validation entirely
// and only returns the generated credentials.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.IsTemp {
		tmpID, tmpPass, err := services.CreateTempUser(input.FoodIDs)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Could not create temporary user")
			return
		}
		utils.RespondOK(c, "created", gin.H{"tmpId": tmpID, "tmpPass": tmpPass})
		return
	}

	if msg := validateRegisterInput(input); msg != "" {
		utils.RespondError(c, http.StatusBadRequest, msg)
		return
	}

	user, err := services.RegisterUser(
		input.Email, input.Username, input.Password,
		input.Firstname, input.Lastname, input.FoodIDs,
	)
	if errors.Is(err, services.ErrDuplicateUser) {
		utils.RespondError(c, http.StatusBadRequest, "Email or Username already in use")
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Registration failed")
		return
	}

	utils.RespondOK(c, "success", gin.H{"user": user})
}

func validateRegisterInput(input RegisterInput) string {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return "Email is not valid"
	}
	if len(input.Username) < 5 {
		return "Username must be at least 5 characters long"
	}
	if len(input.Password) < 5 {
		return "Password must have at least 5 characters"
	}
	return ""
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := services.AuthenticateByUsername(input.Username, input.Password)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Username or password not correct")
		return
	}

	accessToken, err := services.IssueAccessToken(user.Profile.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Could not generate token")
		return
	}
	refreshToken, err := services.IssueRefreshToken(user.Profile.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	utils.RespondOK(c, "Valid username & password.", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// bearerToken pulls the token out of the Authorization header for the
// token endpoints, which respond 400 on a malformed header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.RespondError(c, http.StatusBadRequest, "Auth header not provided")
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		utils.RespondError(c, http.StatusBadRequest, "Auth method is invalid")
		return "", false
	}
	return parts[1], true
}

// VerifyAccess confirms the presented access token is still valid.
func VerifyAccess(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	if _, err := services.VerifyAccessToken(token); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Token is invalid")
		return
	}
	utils.RespondOK(c, "Token is valid", nil)
}

// RefreshToken exchanges a refresh token for a new access token.
func RefreshToken(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	newAccessToken, err := services.RefreshAccessToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Token is invalid")
		return
	}
	utils.RespondOK(c, "Refresh token valid, new access token in reps", gin.H{
		"newAccessToken": newAccessToken,
	})
}

// Logout revokes the presented refresh token.
func Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}
	if err := services.RevokeRefreshToken(token); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Refresh token is not valid")
		return
	}
	utils.RespondOK(c, "Refresh token removed.", nil)
}

type ResetPasswordInput struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=5"`
}

func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID := c.GetString(middlewares.ProfileIDKey)
	err := services.ResetPassword(profileID, input.Password, input.NewPassword)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.RespondError(c, http.StatusBadRequest, "Old password is incorrect")
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Update failed")
		return
	}
	utils.RespondOK(c, "Updated", nil)
}
