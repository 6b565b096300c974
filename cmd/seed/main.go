package main

import (
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/model"
	"realtime-chat-be/pkg/database"
)

// Seeds a handful of demo accounts plus one private and one group room so a
// fresh environment is immediately usable.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo users...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: bcrypt failed: %v", err)
	}

	users := []model.User{
		{Email: "alice@example.com", DisplayName: "Alice", PasswordHash: string(hash), Status: "offline"},
		{Email: "bob@example.com", DisplayName: "Bob", PasswordHash: string(hash), Status: "offline"},
		{Email: "carol@example.com", DisplayName: "Carol", PasswordHash: string(hash), Status: "offline"},
		{Email: "dave@example.com", DisplayName: "Dave", PasswordHash: string(hash), Status: "offline"},
	}

	for i := range users {
		var existing model.User
		if err := db.Where("email = ?", users[i].Email).First(&existing).Error; err == nil {
			users[i] = existing
			color.Yellow("User %s already exists, skipping...", existing.Email)
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("Error creating user %s: %v", users[i].Email, err)
		}
		color.Green("Created user: %s", users[i].Email)
	}

	color.Cyan("Seeding demo rooms...")

	pairKey := entity.PrivatePairKey(users[0].Id, users[1].Id)
	var existingPrivate model.Room
	if err := db.Where("pair_key = ?", pairKey).First(&existingPrivate).Error; err != nil {
		private := model.Room{
			Kind:      string(entity.RoomKindPrivate),
			CreatedBy: users[0].Id,
			Active:    true,
			PairKey:   &pairKey,
		}
		if err := db.Create(&private).Error; err != nil {
			log.Fatalf("Error creating private room: %v", err)
		}
		addParticipants(db, private.Id, users[0].Id, users[1].Id)
		color.Green("Created private room for %s and %s", users[0].DisplayName, users[1].DisplayName)
	} else {
		color.Yellow("Private room already exists, skipping...")
	}

	groupName := "General"
	var existingGroup model.Room
	if err := db.Where("kind = ? AND name = ?", string(entity.RoomKindGroup), groupName).First(&existingGroup).Error; err != nil {
		group := model.Room{
			Kind:      string(entity.RoomKindGroup),
			Name:      &groupName,
			CreatedBy: users[0].Id,
			Active:    true,
		}
		if err := db.Create(&group).Error; err != nil {
			log.Fatalf("Error creating group room: %v", err)
		}
		addParticipants(db, group.Id, users[0].Id, users[1].Id, users[2].Id, users[3].Id)
		color.Green("Created group room %q with %d members", groupName, len(users))
	} else {
		color.Yellow("Group room already exists, skipping...")
	}

	color.Green("✅ Seeding completed at %s", time.Now().Format(time.RFC3339))
}

func addParticipants(db *gorm.DB, roomId uuid.UUID, userIds ...uuid.UUID) {
	for _, userId := range userIds {
		row := model.RoomParticipant{RoomId: roomId, UserId: userId}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("Warn: failed to add participant %s: %v", userId, err)
		}
	}
}
