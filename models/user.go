package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential record. Temporary (guest) accounts have no
// email; they are identified by TmpID until merged into a permanent
// account. RefreshTokens holds the JSON-encoded list of refresh tokens
// that are still accepted for this user.
type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Email         string    `gorm:"size:255;index" json:"email,omitempty"`
	Password      string    `gorm:"not null" json:"-"`
	TmpID         string    `gorm:"column:tmp_id;size:36;index" json:"tmpId,omitempty"`
	RefreshTokens string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Profile *Profile `json:"profile,omitempty"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Profile identifies a person across rooms. One-to-one with User.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex" json:"-"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Firstname string    `gorm:"size:255" json:"firstname"`
	Lastname  string    `gorm:"size:255" json:"lastname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms        []RoomMember `gorm:"foreignKey:ProfileID" json:"rooms,omitempty"`
	CreatedRooms []Room       `gorm:"foreignKey:CreatorID" json:"createdRooms,omitempty"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
