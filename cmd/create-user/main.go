// CLI tool to create a user with a bcrypt-hashed password and an empty profile.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lg/fitpulse-api/internal/config"
	"lg/fitpulse-api/internal/store"
)

type account struct {
	Username string
	Email    string
	Password string
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := store.Connect(ctx, cfg.DBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	acc, err := readAccount(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	u, err := db.CreateUser(ctx, acc.Username, acc.Email, string(hash), uuid.New().String())
	if errors.Is(err, store.ErrDuplicate) {
		fmt.Fprintf(os.Stderr, "Username or email already taken\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.UpsertProfile(ctx, store.Profile{UserID: u.ID}); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", u.ID)
	fmt.Printf("  Username:   %s\n", u.Username)
	fmt.Printf("  Auth Token: %s\n", u.AuthToken)
}

// readAccount prompts for the account fields on w and reads them from r.
func readAccount(r io.Reader, w io.Writer) (account, error) {
	reader := bufio.NewReader(r)
	prompt := func(label string) string {
		fmt.Fprintf(w, "%s: ", label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	acc := account{
		Username: prompt("Username"),
		Email:    prompt("Email"),
		Password: prompt("Password"),
	}
	switch {
	case acc.Username == "":
		return account{}, errors.New("username is required")
	case !strings.Contains(acc.Email, "@"):
		return account{}, errors.New("a valid email is required")
	case len(acc.Password) < 8:
		return account{}, errors.New("password must be at least 8 characters")
	}
	return acc, nil
}
