// Command token-generator issues a signed access token for a clinic system
// client. It is a development and onboarding helper: tokens for real
// integrations should come from the deployment's secret-management flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/oculab/iolcalc-api/internal/config"
	"github.com/oculab/iolcalc-api/internal/service/auth"
)

func main() {
	clientIDFlag := flag.String("client-id", "", "client UUID to issue the token for (default: random)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	clientID := uuid.New()
	if *clientIDFlag != "" {
		clientID, err = uuid.Parse(*clientIDFlag)
		if err != nil {
			log.Fatalf("invalid client id %q: %v", *clientIDFlag, err)
		}
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize JWT service: %v", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), clientID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Printf("Client ID: %s\nToken: %s\n", clientID, token)
}
