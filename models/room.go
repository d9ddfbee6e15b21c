package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRoomName marks a profile's private single-member library. A
// profile creates exactly one room with this name; its food set seeds
// the shared-food intersection of every other room the profile joins.
const DefaultRoomName = "__default"

type Room struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	CreatorID string `gorm:"size:36;index" json:"creatorId"`
	// Version is bumped on every membership/food rewrite; concurrent
	// events on the same room fail the compare-and-swap instead of
	// silently losing an update.
	Version   int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	Members []RoomMember `gorm:"foreignKey:RoomID" json:"members,omitempty"`
	Foods   []FoodOnRoom `gorm:"foreignKey:RoomID" json:"foods,omitempty"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RoomMember is the Profile-to-Room join record. CreatedAt is the join
// time; listings order by it ascending, so index 0 is the member's
// default room or earliest join.
type RoomMember struct {
	RoomID    string    `gorm:"primaryKey;size:36" json:"roomId"`
	ProfileID string    `gorm:"primaryKey;size:36" json:"profileId"`
	CreatedAt time.Time `json:"joinedAt"`

	Profile *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

// FoodOnRoom is a food currently in a room's library. For any
// non-default room the full set is recomputed (deleted and recreated)
// on every membership change.
type FoodOnRoom struct {
	RoomID     string `gorm:"primaryKey;size:36" json:"roomId"`
	FoodID     string `gorm:"primaryKey;size:36" json:"foodId"`
	IsFavorite bool   `json:"isFavorite"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}
