// Package cli implements the management subcommands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/libraryhub/libraryhub/internal/auth"
	"github.com/libraryhub/libraryhub/internal/config"
	"github.com/libraryhub/libraryhub/internal/database"
	"github.com/libraryhub/libraryhub/internal/database/users"
	"github.com/libraryhub/libraryhub/internal/entities"
)

// CreateAdminCommand creates an administrator account.
type CreateAdminCommand struct {
	Email        string
	Username     string
	Password     string
	DatabasePath string
}

// NewCreateAdminCommand creates a new CreateAdminCommand.
func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address of the admin account (required)")
	fs.StringVar(&cmd.Username, "username", "admin", "Username of the admin account")
	fs.StringVar(&cmd.Password, "password", "", "Password of the admin account (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account in the application database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-admin -email admin@example.com -password s3cr3tpass\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Run executes the create-admin command.
func (cmd *CreateAdminCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	passwordHash, err := auth.HashPassword(cmd.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	store := users.NewRepository(db.DB)
	user := &entities.User{
		Email:        cmd.Email,
		Username:     cmd.Username,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleAdmin,
		IsActive:     true,
	}
	if err := store.Create(user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Printf("Admin user %s (%s) created with ID %d\n", user.Username, user.Email, user.ID)
	return nil
}
