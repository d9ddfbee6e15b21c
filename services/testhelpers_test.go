package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database and points the global
// connection at it. The shared-cache name keeps gorm's pooled
// connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))

	config.DB = db
	return db
}

func seedFoods(t *testing.T, db *gorm.DB, names ...string) []string {
	t.Helper()

	ids := make([]string, 0, len(names))
	for _, name := range names {
		food := models.Food{Name: name}
		require.NoError(t, db.Create(&food).Error)
		ids = append(ids, food.ID)
	}
	return ids
}

// registerProfile registers a permanent user whose default room holds
// the given foods and returns its profile.
func registerProfile(t *testing.T, username string, foodIDs []string) models.Profile {
	t.Helper()

	user, err := RegisterUser(username+"@example.com", username, "secret-pass", "Test", "User", foodIDs)
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	return *user.Profile
}

func roomFoodIDs(t *testing.T, db *gorm.DB, roomID string) []string {
	t.Helper()

	var ids []string
	require.NoError(t, db.Model(&models.FoodOnRoom{}).
		Where("room_id = ?", roomID).Order("food_id").Pluck("food_id", &ids).Error)
	return ids
}

func defaultRoomOf(t *testing.T, db *gorm.DB, profileID string) models.Room {
	t.Helper()

	var room models.Room
	require.NoError(t, db.Where("creator_id = ? AND name = ?", profileID, models.DefaultRoomName).
		Order("created_at ASC").First(&room).Error)
	return room
}
