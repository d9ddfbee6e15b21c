package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/UmaKase/umakase-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var (
	Port               = "8080"
	AccessTokenSecret  = []byte("umakase-access-secret")
	RefreshTokenSecret = []byte("umakase-refresh-secret")
	AccessTokenTTL     = 15 * time.Minute
	RefreshTokenTTL    = 7 * 24 * time.Hour

	// RoomCreateLimit caps how many rooms one profile may create,
	// the default room included.
	RoomCreateLimit = 3
)

func InitConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	if v := os.Getenv("PORT"); v != "" {
		Port = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		AccessTokenSecret = []byte(v)
	}
	if v := os.Getenv("REFRESH_TOKEN_SECRET"); v != "" {
		RefreshTokenSecret = []byte(v)
	}
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid ACCESS_TOKEN_TTL: %v", err)
		}
		AccessTokenTTL = d
	}
	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid REFRESH_TOKEN_TTL: %v", err)
		}
		RefreshTokenTTL = d
	}
	if v := os.Getenv("ROOM_CREATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid ROOM_CREATE_LIMIT: %v", err)
		}
		RoomCreateLimit = n
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = AutoMigrate(DB)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// AutoMigrate is shared with the test helpers so the schema stays in
// one place.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Room{},
		&models.RoomMember{},
		&models.Food{},
		&models.Tag{},
		&models.TagOnFood{},
		&models.FoodOnRoom{},
	)
}
