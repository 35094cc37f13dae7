package postgres

import (
	"fmt"
	"log"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/joho/godotenv"

	"github.com/VitaminP8/blogspace/internal/config"
	"github.com/VitaminP8/blogspace/models"
)

var DB *gorm.DB

// GetDB returns the package-level DB (for tests).
func GetDB() *gorm.DB {
	return DB
}

// InitDB connects to PostgreSQL and sets the package-level DB.
func InitDB() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST"),
		config.GetEnv("DB_USER"),
		config.GetEnv("DB_PASSWORD"),
		config.GetEnv("DB_NAME"),
		config.GetEnv("DB_PORT"),
		config.GetEnv("DB_SSLMODE"),
	)

	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %v", err)
	}

	DB = db
	log.Println("Successfully connected to the database.")
	return nil
}

// CloseDB closes the database connection.
func CloseDB() error {
	if DB == nil {
		return nil
	}

	err := DB.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %v", err)
	}

	log.Println("Database connection closed.")
	return nil
}

// InitDBWithConnection allows injecting a connection (for tests).
func InitDBWithConnection(db *gorm.DB) {
	DB = db
}

// usernamesByID resolves usernames for a set of user IDs in one query.
// Author display names are joined in application memory.
func usernamesByID(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string)
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	err := DB.Where("id IN (?)", ids).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not resolve usernames: %w", err)
	}

	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}
