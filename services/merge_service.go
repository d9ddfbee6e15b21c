package services

import (
	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"gorm.io/gorm"
)

// MergeTempUser folds a guest account into a freshly registered
// permanent account. The whole sequence runs in one transaction: a
// failure at any step rolls back everything already copied.
//
// Steps: re-authenticate the guest by tmp id + one-time password, copy
// the guest's default-room foods into the new profile's default room,
// copy the guest's shared-room memberships, then drop the guest from
// those rooms and re-reconcile each of them.
func MergeTempUser(newProfileID, tmpID, tmpPass string) (*models.Profile, error) {
	var affectedRooms []string

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var newProfile models.Profile
		if err := tx.Where("id = ?", newProfileID).First(&newProfile).Error; err != nil {
			return ErrProfileNotFound
		}

		var memberships []models.RoomMember
		err := tx.Where("profile_id = ?", newProfile.ID).
			Order("created_at ASC").Find(&memberships).Error
		if err != nil {
			return err
		}
		if len(memberships) == 0 {
			return ErrRoomNotFound
		}
		// index 0 is the new profile's default room by the join-order
		// convention
		targetRoomID := memberships[0].RoomID

		tmpUser, err := authenticateTemp(tx, tmpID, tmpPass)
		if err != nil {
			return err
		}

		// the guest's library is its first-created "__default" room
		var tmpRoom models.Room
		err = tx.Where("creator_id = ? AND name = ?", tmpUser.Profile.ID, models.DefaultRoomName).
			Order("created_at ASC").First(&tmpRoom).Error
		if err != nil {
			return ErrRoomNotFound
		}

		if err := copyRoomFoods(tx, tmpRoom.ID, targetRoomID); err != nil {
			return err
		}

		// shared rooms: move the membership over, then reconcile
		var tmpMemberships []models.RoomMember
		err = tx.Joins("JOIN rooms ON rooms.id = room_members.room_id").
			Where("room_members.profile_id = ? AND rooms.name <> ?", tmpUser.Profile.ID, models.DefaultRoomName).
			Find(&tmpMemberships).Error
		if err != nil {
			return err
		}

		for _, m := range tmpMemberships {
			var present int64
			err := tx.Model(&models.RoomMember{}).
				Where("room_id = ? AND profile_id = ?", m.RoomID, newProfile.ID).
				Count(&present).Error
			if err != nil {
				return err
			}
			if present == 0 {
				joined := models.RoomMember{RoomID: m.RoomID, ProfileID: newProfile.ID}
				if err := tx.Create(&joined).Error; err != nil {
					return err
				}
			}

			err = tx.Where("room_id = ? AND profile_id = ?", m.RoomID, tmpUser.Profile.ID).
				Delete(&models.RoomMember{}).Error
			if err != nil {
				return err
			}

			if err := reconcileRoom(tx, m.RoomID); err != nil {
				return err
			}
			affectedRooms = append(affectedRooms, m.RoomID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("temp user merged",
		"profileId", newProfileID, "tmpId", tmpID, "rooms", len(affectedRooms))
	return ProfileByID(newProfileID)
}

// copyRoomFoods copies every food row from one room to another,
// skipping pairs the target already has.
func copyRoomFoods(tx *gorm.DB, fromRoomID, toRoomID string) error {
	var foods []models.FoodOnRoom
	if err := tx.Where("room_id = ?", fromRoomID).Find(&foods).Error; err != nil {
		return err
	}

	var existing []string
	err := tx.Model(&models.FoodOnRoom{}).Where("room_id = ?", toRoomID).
		Pluck("food_id", &existing).Error
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, id := range existing {
		present[id] = true
	}

	rows := make([]models.FoodOnRoom, 0, len(foods))
	for _, f := range foods {
		if !present[f.FoodID] {
			rows = append(rows, models.FoodOnRoom{RoomID: toRoomID, FoodID: f.FoodID})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
