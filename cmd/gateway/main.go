package main

import (
	"log"
	"net/url"

	"github.com/joho/godotenv"

	"agromart/internal/config"
	"agromart/internal/gateway"
	"agromart/internal/pkg/token"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal(err)
	}

	upstream, err := url.Parse(cfg.UserServiceURL)
	if err != nil {
		log.Fatalf("invalid USER_SERVICE_URL %q: %v", cfg.UserServiceURL, err)
	}

	// The gateway only verifies tokens; TTLs apply to issuance and are not
	// used here.
	tokens := token.New(cfg.JWTSecret, 0, 0)

	gw := gateway.New(upstream, tokens)
	log.Printf("gateway listening on %s, upstream %s", cfg.ListenAddr, cfg.UserServiceURL)
	if err := gw.Router().Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
