package services

import (
	"errors"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"gorm.io/gorm"
)

// Room events dispatched through HandleRoomEvent.
const (
	RoomEventAddMember    = "add-member"
	RoomEventRemoveMember = "remove-member"
	RoomEventUpdateFood   = "update-food"
)

// memberFoods pairs a room member with the food ids of their default
// (first-created) room. It is the unit the reconciliation engine
// intersects over.
type memberFoods struct {
	Profile models.Profile
	FoodIDs []string
}

// resolveRoomies maps usernames (or profile ids) to profiles together
// with each profile's default-room food set. Names that match nothing
// are silently skipped.
func resolveRoomies(tx *gorm.DB, names []string) ([]memberFoods, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	err := tx.Where("username IN ? OR id IN ?", names, names).Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	roomies := make([]memberFoods, 0, len(profiles))
	for i := range profiles {
		foodIDs, err := defaultRoomFoodIDs(tx, profiles[i].ID)
		if err != nil {
			return nil, err
		}
		roomies = append(roomies, memberFoods{Profile: profiles[i], FoodIDs: foodIDs})
	}
	return roomies, nil
}

// defaultRoomFoodIDs returns the food set of the profile's
// first-created room (created_at ascending, index 0). A profile
// without a created room contributes an empty set.
func defaultRoomFoodIDs(tx *gorm.DB, profileID string) ([]string, error) {
	var room models.Room
	err := tx.Where("creator_id = ?", profileID).Order("created_at ASC").First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	err = tx.Model(&models.FoodOnRoom{}).Where("room_id = ?", room.ID).
		Order("food_id").Pluck("food_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SharedFoodIDs computes the foods common to every member: flatten all
// member food lists, count occurrences per id, keep ids whose count
// equals the member count. Output keeps first-seen order so results
// are deterministic.
func SharedFoodIDs(roomies []memberFoods) []string {
	var all []string
	for _, r := range roomies {
		all = append(all, r.FoodIDs...)
	}

	counts := make(map[string]int, len(all))
	order := make([]string, 0, len(all))
	for _, id := range all {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	shared := make([]string, 0, len(order))
	for _, id := range order {
		if counts[id] == len(roomies) {
			shared = append(shared, id)
		}
	}
	return shared
}

// ApplySharedFoods rewrites a room's food library: delete everything,
// insert the computed set. Must run inside the caller's transaction so
// concurrent readers never observe the empty transient state.
func ApplySharedFoods(tx *gorm.DB, roomID string, foodIDs []string) error {
	if err := tx.Where("room_id = ?", roomID).Delete(&models.FoodOnRoom{}).Error; err != nil {
		return err
	}
	if len(foodIDs) == 0 {
		return nil
	}
	rows := make([]models.FoodOnRoom, 0, len(foodIDs))
	for _, id := range foodIDs {
		rows = append(rows, models.FoodOnRoom{RoomID: roomID, FoodID: id})
	}
	return tx.Create(&rows).Error
}

// reconcileRoom recomputes a room's shared foods from its current
// members and applies the result.
func reconcileRoom(tx *gorm.DB, roomID string) error {
	var profileIDs []string
	err := tx.Model(&models.RoomMember{}).Where("room_id = ?", roomID).
		Pluck("profile_id", &profileIDs).Error
	if err != nil {
		return err
	}
	roomies, err := resolveRoomies(tx, profileIDs)
	if err != nil {
		return err
	}
	return ApplySharedFoods(tx, roomID, SharedFoodIDs(roomies))
}

// lockRoom loads the room and bumps its version with a compare-and-
// swap. A concurrent event on the same room blocks on the row write
// and then fails the version check instead of losing an update.
func lockRoom(tx *gorm.DB, roomID string) (*models.Room, error) {
	var room models.Room
	if err := tx.Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, ErrRoomNotFound
	}
	if err := bumpRoomVersion(tx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// bumpRoomVersion advances the version with a compare-and-swap against
// the value the caller read. A writer that got there first makes the
// swap miss, surfacing ErrRoomConflict instead of a lost update.
func bumpRoomVersion(tx *gorm.DB, room *models.Room) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND version = ?", room.ID, room.Version).
		Update("version", room.Version+1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomConflict
	}
	room.Version++
	return nil
}

// CreateRoom creates a room and its initial membership. A default
// room is seeded with exactly the given foods; a shared room always
// gets the members' intersection and the caller-supplied foods are
// ignored.
func CreateRoom(creatorProfileID, name string, roomieNames, foodIDs []string, isDefault bool) (*models.Room, error) {
	var roomID string
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var creator models.Profile
		if err := tx.Where("id = ?", creatorProfileID).First(&creator).Error; err != nil {
			return ErrProfileNotFound
		}

		var created int64
		err := tx.Model(&models.Room{}).Where("creator_id = ?", creator.ID).Count(&created).Error
		if err != nil {
			return err
		}
		if int(created) >= config.RoomCreateLimit {
			return ErrQuotaExceeded
		}

		roomies, err := resolveRoomies(tx, roomieNames)
		if err != nil {
			return err
		}
		// the creator is always a member, whether or not the caller
		// listed their own username
		hasCreator := false
		for _, r := range roomies {
			if r.Profile.ID == creator.ID {
				hasCreator = true
				break
			}
		}
		if !hasCreator {
			creatorFoods, err := defaultRoomFoodIDs(tx, creator.ID)
			if err != nil {
				return err
			}
			roomies = append([]memberFoods{{Profile: creator, FoodIDs: creatorFoods}}, roomies...)
		}

		room := models.Room{Name: name, CreatorID: creator.ID}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}

		members := make([]models.RoomMember, 0, len(roomies))
		for _, r := range roomies {
			members = append(members, models.RoomMember{RoomID: room.ID, ProfileID: r.Profile.ID})
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		foods := SharedFoodIDs(roomies)
		if isDefault {
			foods = dedupeIDs(foodIDs)
		}
		if err := ApplySharedFoods(tx, room.ID, foods); err != nil {
			return err
		}

		roomID = room.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return RoomInfo(roomID)
}

// HandleRoomEvent dispatches a membership event and reapplies the
// shared-food invariant. update-food is an always-success no-op
// reserved for client-triggered resync.
func HandleRoomEvent(event, roomID string, newRoomies, removeRoomies []string) (*models.Room, error) {
	switch event {
	case RoomEventAddMember:
		if newRoomies == nil {
			return nil, ErrMissingEventField
		}
		return addRoomMembers(roomID, newRoomies)
	case RoomEventRemoveMember:
		if removeRoomies == nil {
			return nil, ErrMissingEventField
		}
		return removeRoomMembers(roomID, removeRoomies)
	case RoomEventUpdateFood:
		return nil, nil
	default:
		return nil, ErrInvalidEvent
	}
}

func addRoomMembers(roomID string, newRoomies []string) (*models.Room, error) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}

		var current []string
		err = tx.Model(&models.RoomMember{}).Where("room_id = ?", room.ID).
			Pluck("profile_id", &current).Error
		if err != nil {
			return err
		}

		roomies, err := resolveRoomies(tx, append(newRoomies, current...))
		if err != nil {
			return err
		}
		foods := SharedFoodIDs(roomies)

		// memberships are rebuilt wholesale, like the food set
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.RoomMember{}).Error; err != nil {
			return err
		}
		members := make([]models.RoomMember, 0, len(roomies))
		for _, r := range roomies {
			members = append(members, models.RoomMember{RoomID: room.ID, ProfileID: r.Profile.ID})
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}

		return ApplySharedFoods(tx, room.ID, foods)
	})
	if err != nil {
		return nil, err
	}
	return RoomInfo(roomID)
}

func removeRoomMembers(roomID string, removeRoomies []string) (*models.Room, error) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}

		sub := tx.Model(&models.Profile{}).Select("id").
			Where("username IN ? OR id IN ?", removeRoomies, removeRoomies)
		err = tx.Where("room_id = ? AND profile_id IN (?)", room.ID, sub).
			Delete(&models.RoomMember{}).Error
		if err != nil {
			return err
		}

		// a room left with zero members simply ends up with an empty
		// food set
		return reconcileRoom(tx, room.ID)
	})
	if err != nil {
		return nil, err
	}
	return RoomInfo(roomID)
}

// RoomInfo loads a room with its members and foods.
func RoomInfo(roomID string) (*models.Room, error) {
	var room models.Room
	err := config.DB.
		Preload("Members.Profile").
		Preload("Foods.Food").
		Where("id = ?", roomID).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AddFoodsToRoom adds foods directly to a room's library, skipping
// pairs already present. Ids that match no catalog entry fail the
// whole call rather than leaving orphan rows behind.
func AddFoodsToRoom(roomID string, foodIDs []string) (*models.Room, error) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}

		ids := dedupeIDs(foodIDs)
		if len(ids) > 0 {
			var known int64
			err := tx.Model(&models.Food{}).Where("id IN ?", ids).Count(&known).Error
			if err != nil {
				return err
			}
			if int(known) != len(ids) {
				return ErrFoodNotFound
			}
		}

		var existing []string
		err = tx.Model(&models.FoodOnRoom{}).Where("room_id = ?", room.ID).
			Pluck("food_id", &existing).Error
		if err != nil {
			return err
		}
		present := make(map[string]bool, len(existing))
		for _, id := range existing {
			present[id] = true
		}

		rows := make([]models.FoodOnRoom, 0, len(ids))
		for _, id := range ids {
			if !present[id] {
				rows = append(rows, models.FoodOnRoom{RoomID: room.ID, FoodID: id})
			}
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return RoomInfo(roomID)
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
