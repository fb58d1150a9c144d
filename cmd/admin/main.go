package main

import (
	"fmt"
	"log"
	"os"

	"flashchat/backend/internal/config"
	"flashchat/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list-users":
		users, err := storageSvc.ListUsers()
		if err != nil {
			log.Fatalf("Error listing users: %v", err)
		}
		for _, user := range users {
			fmt.Println(user.Username)
		}
	case "delete-user":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin delete-user <username>")
			os.Exit(1)
		}
		username := os.Args[2]
		if err := storageSvc.DeleteUser(username); err != nil {
			log.Fatalf("Error deleting user: %v", err)
		}
		fmt.Printf("User %s has been deleted.\n", username)
	case "reset-password":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin reset-password <username> <new_password>")
			os.Exit(1)
		}
		username, password := os.Args[2], os.Args[3]
		if err := resetPassword(storageSvc, username, password); err != nil {
			log.Fatalf("Error resetting password: %v", err)
		}
		fmt.Printf("Password for %s has been reset.\n", username)
	case "card-stats":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin card-stats <card_id>")
			os.Exit(1)
		}
		stats, err := storageSvc.GetCardStats(os.Args[2])
		if err != nil {
			log.Fatalf("Error reading stats: %v", err)
		}
		for _, stat := range stats {
			fmt.Printf("%s\t%d\n", stat.Day, stat.Counter)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func resetPassword(s storage.Storage, username, password string) error {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return s.SaveUser(user)
}
