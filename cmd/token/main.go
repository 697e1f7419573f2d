// Command token prints a signed access token for a user ID, for calling the
// API locally. It reads the same configuration as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/config"
	"github.com/phrazzld/meditation-api/internal/service/auth"
)

func main() {
	user := flag.String("user", "", "user ID to issue the token for (random when empty)")
	flag.Parse()

	userID := uuid.New()
	if *user != "" {
		parsed, err := uuid.Parse(*user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user ID %q: %v\n", *user, err)
			os.Exit(2)
		}
		userID = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create JWT service: %v\n", err)
		os.Exit(1)
	}

	token, err := jwtService.GenerateToken(context.Background(), userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User: %s\nToken: %s\n", userID, token)
}
