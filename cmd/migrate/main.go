package main

import (
	"log"
	"os"

	"mindwell-be/internal/model"
	"mindwell-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions first, AutoMigrate relies on gen_random_uuid()
	color.Yellow("Step 1: Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Yellow("Step 2: AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.Profile{},
		&model.PasswordResetToken{},
		&model.UserProvider{},
		&model.EmailVerificationToken{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.NotificationType{},
		&model.Notification{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// Seed the notification registry; ON CONFLICT keeps reruns idempotent
	color.Yellow("Step 3: Seeding notification registry...")
	seedSQL := []string{
		`INSERT INTO notification_types (code, display_name, template, target_type, is_active)
		 VALUES ('POST_LIKED', 'New like', 'Someone appreciated your post "{post_title}"', 'SELF', true)
		 ON CONFLICT (code) DO NOTHING;`,
		`INSERT INTO notification_types (code, display_name, template, target_type, is_active)
		 VALUES ('COMMENT_CREATED', 'New comment', 'Someone replied to your post "{post_title}"', 'SELF', true)
		 ON CONFLICT (code) DO NOTHING;`,
		`INSERT INTO notification_types (code, display_name, template, target_type, target_role, is_active)
		 VALUES ('POST_FLAGGED', 'Post flagged for review', 'A post was flagged by the safety scanner: "{post_title}"', 'ROLE', 'professional', true)
		 ON CONFLICT (code) DO NOTHING;`,
		`INSERT INTO notification_types (code, display_name, template, target_type, is_active)
		 VALUES ('USER_REGISTERED', 'Welcome', 'Welcome to MindWell, {full_name}. Your account is ready.', 'SELF', true)
		 ON CONFLICT (code) DO NOTHING;`,
		`INSERT INTO notification_types (code, display_name, template, target_type, is_active)
		 VALUES ('SYSTEM_BROADCAST', 'Announcement', '{message}', 'BROADCAST', true)
		 ON CONFLICT (code) DO NOTHING;`,
	}
	for _, sql := range seedSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to seed notification type: %v", err)
		}
	}

	color.Green("Success: database migration completed.")
}
