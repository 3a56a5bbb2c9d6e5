// Command token issues an operator token for the admin API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"address-valuation/config"
	"address-valuation/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("AVE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "jwt.secret is not set (AVE_JWT_SECRET)")
		os.Exit(1)
	}

	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	token, expiresAt, err := tokenSvc.Generate(*subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
}
