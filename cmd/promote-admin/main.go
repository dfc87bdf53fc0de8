// Command promote-admin grants the admin role to an existing user by email.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/helpnexus/feedback-backend/internal/config"
	"github.com/helpnexus/feedback-backend/internal/database"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}
	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := database.GetCollection("users")
	result, err := col.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": "admin", "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Fatal("Failed to promote user:", err)
	}
	if result.MatchedCount == 0 {
		log.Fatalf("User with email %s not found", email)
	}

	log.Printf("Successfully promoted %s to admin role", email)
}
