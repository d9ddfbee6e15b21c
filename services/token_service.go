package services

import (
	"encoding/json"
	"time"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// TokenClaims is the payload of both access and refresh tokens; the
// two differ only in TTL and signing secret. Refresh tokens are
// additionally tracked in User.RefreshTokens, and a refresh token is
// usable iff it verifies AND is still present in that list.
type TokenClaims struct {
	ProfileID string `json:"id"`
	jwt.RegisteredClaims
}

func signToken(profileID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifyToken(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func IssueAccessToken(profileID string) (string, error) {
	return signToken(profileID, config.AccessTokenSecret, config.AccessTokenTTL)
}

// IssueRefreshToken signs a refresh token and appends it to the user's
// stored list. Dead entries are pruned on the way.
func IssueRefreshToken(profileID string) (string, error) {
	token, err := signToken(profileID, config.RefreshTokenSecret, config.RefreshTokenTTL)
	if err != nil {
		return "", err
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		user, err := userByProfileID(tx, profileID)
		if err != nil {
			return err
		}
		list := pruneTokenList(decodeTokenList(user.RefreshTokens))
		list = append(list, token)
		return saveTokenList(tx, user.ID, list)
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return verifyToken(tokenString, config.AccessTokenSecret)
}

func VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return verifyToken(tokenString, config.RefreshTokenSecret)
}

// DecodeToken reads claims without checking the signature. Only used
// when the token is being removed, not trusted.
func DecodeToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
// The token must verify and still be present in the user's stored
// list; tokens revoked via logout are rejected even though the
// signature remains valid.
func RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := userByProfileID(config.DB, claims.ProfileID)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !containsToken(decodeTokenList(user.RefreshTokens), refreshToken) {
		return "", ErrInvalidToken
	}

	return IssueAccessToken(claims.ProfileID)
}

// RevokeRefreshToken removes the exact token string from the user's
// list. The token is decoded without signature verification since it
// is only being discarded.
func RevokeRefreshToken(refreshToken string) error {
	claims, err := DecodeToken(refreshToken)
	if err != nil {
		return err
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		user, err := userByProfileID(tx, claims.ProfileID)
		if err != nil {
			return ErrInvalidToken
		}
		list := decodeTokenList(user.RefreshTokens)
		if !containsToken(list, refreshToken) {
			return ErrInvalidToken
		}
		kept := make([]string, 0, len(list))
		for _, t := range list {
			if t != refreshToken {
				kept = append(kept, t)
			}
		}
		return saveTokenList(tx, user.ID, pruneTokenList(kept))
	})
}

func userByProfileID(tx *gorm.DB, profileID string) (*models.User, error) {
	var profile models.Profile
	if err := tx.Where("id = ?", profileID).First(&profile).Error; err != nil {
		return nil, ErrUserNotFound
	}
	var user models.User
	if err := tx.Where("id = ?", profile.UserID).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func decodeTokenList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		config.Logger.Errorw("corrupt refresh token list", "error", err)
		return nil
	}
	return list
}

// pruneTokenList drops entries that no longer verify so the stored
// list does not grow without bound.
func pruneTokenList(list []string) []string {
	kept := make([]string, 0, len(list))
	for _, t := range list {
		if _, err := VerifyRefreshToken(t); err == nil {
			kept = append(kept, t)
		}
	}
	return kept
}

func containsToken(list []string, token string) bool {
	for _, t := range list {
		if t == token {
			return true
		}
	}
	return false
}

func saveTokenList(tx *gorm.DB, userID string, list []string) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_tokens", string(raw)).Error
}
