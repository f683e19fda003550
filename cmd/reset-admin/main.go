package main

import (
	"context"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/examhall/examhall-backend/internal/database"
	"github.com/examhall/examhall-backend/internal/logger"
	"github.com/examhall/examhall-backend/internal/repository"
)

// reset-admin overwrites the admin password without asking for the old one.
// Operator recovery tool for a locked-out admin.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	credRepo := repository.NewAdminCredentialRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	fmt.Println("=== Reset Admin Password ===")

	fmt.Print("Enter New Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	fmt.Print("Confirm New Password: ")
	byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println()
	if string(byteConfirm) != password {
		fmt.Println("Error: Passwords do not match")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	if err := credRepo.UpdatePassword(ctx, password); err != nil {
		log.Fatal().Err(err).Msg("Failed to update admin password")
	}

	fmt.Println("\nSuccess! Admin password updated.")
}
