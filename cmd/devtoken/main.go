// Command devtoken prints a bearer token for local calls to the
// push-token endpoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/spec-kit/profile-push-service/internal/auth"
	"github.com/spec-kit/profile-push-service/internal/config"
)

func main() {
	uid := flag.String("uid", "", "caller uid to put in the token subject")
	ttl := flag.Int("ttl", 0, "token lifetime in minutes (defaults to AUTH_ACCESS_TOKEN_TTL_MINUTES)")
	flag.Parse()

	if *uid == "" {
		log.Fatal("-uid is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *ttl <= 0 {
		*ttl = cfg.Auth.AccessTokenTTLMinutes
	}

	token, exp, err := auth.NewTokenManager(cfg.Auth.JWTSecret, *ttl).GenerateToken(*uid)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
	log.Printf("expires at %s", exp.Format(time.RFC3339))
}
