package main

import (
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
)

// generateRandomString creates a random hex string of length n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueUsername tries until a unique username is found
func generateUniqueUsername(db *gorm.DB) string {
	for {
		username := "admin_" + generateRandomString(4)
		var count int64
		db.Model(&model.User{}).Where("username = ?", username).Count(&count)
		if count == 0 {
			return username
		}
		// If username exists, loop again
	}
}

func main() {

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		log.Fatal("ADMIN_EMAIL must be set; the admin allow-list matches on email")
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = generateUniqueUsername(db.DB)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = generateRandomString(12)
		fmt.Printf("Generated admin password: %s\n", password)
	}

	utilities.CreateAdmin(password, username, email, db.DB)

	fmt.Printf("Created admin user %s (%s)\n", username, email)
	fmt.Println("Remember to add the email to ADMIN_EMAILS")
}
