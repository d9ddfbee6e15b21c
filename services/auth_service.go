package services

import (
	"errors"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tmpPasswordLength = 12

// RegisterUser creates a permanent account: user, profile and the
// profile's default room seeded with the given foods.
func RegisterUser(email, username, password, firstname, lastname string, foodIDs []string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var userID string
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.User{}).
			Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
			Where("users.email = ? OR profiles.username = ?", email, username).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUser
		}

		user := models.User{
			Email:    email,
			Password: hashedPassword,
			Profile: &models.Profile{
				Username:  username,
				Firstname: firstname,
				Lastname:  lastname,
			},
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := createDefaultRoom(tx, user.Profile, foodIDs); err != nil {
			return err
		}

		userID = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := config.DB.Preload("Profile").Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateTempUser creates a guest account and returns its one-time
// credentials. The guest's username is its tmp id; the default room is
// seeded with the given foods.
func CreateTempUser(foodIDs []string) (tmpID, tmpPass string, err error) {
	tmpID = uuid.NewString()
	tmpPass = utils.GenerateRandomToken(tmpPasswordLength)

	hashedPassword, err := utils.HashPassword(tmpPass)
	if err != nil {
		return "", "", err
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Password: hashedPassword,
			TmpID:    tmpID,
			Profile: &models.Profile{
				Username: tmpID,
			},
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return createDefaultRoom(tx, user.Profile, foodIDs)
	})
	if err != nil {
		return "", "", err
	}
	return tmpID, tmpPass, nil
}

func createDefaultRoom(tx *gorm.DB, profile *models.Profile, foodIDs []string) error {
	room := models.Room{Name: models.DefaultRoomName, CreatorID: profile.ID}
	if err := tx.Create(&room).Error; err != nil {
		return err
	}
	member := models.RoomMember{RoomID: room.ID, ProfileID: profile.ID}
	if err := tx.Create(&member).Error; err != nil {
		return err
	}
	return ApplySharedFoods(tx, room.ID, dedupeIDs(foodIDs))
}

// AuthenticateByUsername checks a username+password pair and returns
// the user with profile loaded.
func AuthenticateByUsername(username, password string) (*models.User, error) {
	return authenticate(config.DB, &models.Profile{Username: username}, password)
}

// AuthenticateByTmpID re-authenticates a guest account by its tmp id
// and one-time password.
func AuthenticateByTmpID(tmpID, password string) (*models.User, error) {
	return authenticateTemp(config.DB, tmpID, password)
}

func authenticate(tx *gorm.DB, cond *models.Profile, password string) (*models.User, error) {
	var profile models.Profile
	if err := tx.Where(cond).First(&profile).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	var user models.User
	if err := tx.Where("id = ?", profile.UserID).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	user.Profile = &profile
	return &user, nil
}

func authenticateTemp(tx *gorm.DB, tmpID, password string) (*models.User, error) {
	var user models.User
	if err := tx.Where("tmp_id = ?", tmpID).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	var profile models.Profile
	if err := tx.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	user.Profile = &profile
	return &user, nil
}

// ResetPassword swaps a user's password after checking the old one.
func ResetPassword(profileID, oldPassword, newPassword string) error {
	user, err := userByProfileID(config.DB, profileID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return ErrInvalidCredentials
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return config.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password", hashed).Error
}

// ProfileByID loads a profile with its room memberships ordered by
// join time.
func ProfileByID(profileID string) (*models.Profile, error) {
	var profile models.Profile
	err := config.DB.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_members.created_at ASC")
		}).
		Where("id = ?", profileID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
