package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food is a global catalog entry, not owned by any room. Img is the
// stored object name in the image store.
type Food struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	AltName   string    `gorm:"size:255" json:"altName"`
	Country   string    `gorm:"size:8;default:jp" json:"country"`
	Img       string    `gorm:"size:255" json:"img"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tags []TagOnFood `gorm:"foreignKey:FoodID" json:"tags,omitempty"`
}

func (f *Food) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type Tag struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type TagOnFood struct {
	TagID  string `gorm:"primaryKey;size:36" json:"tagId"`
	FoodID string `gorm:"primaryKey;size:36" json:"foodId"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}
