package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"agromart/internal/config"
	"agromart/internal/database"
	"agromart/internal/modules/admin"
	"agromart/internal/notify"
	"agromart/internal/repository"
)

// Bootstrap CLI: migrates the schema and creates the first SUPER_ADMIN.
// Mirrors POST /admin/seed, so it is a no-op once any admin exists.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", envOr("SEED_ADMIN_EMAIL", "admin@agromart.local"), "super admin email")
	password := flag.String("password", envOr("SEED_ADMIN_PASSWORD", ""), "super admin password")
	name := flag.String("name", envOr("SEED_ADMIN_NAME", "Super Admin"), "super admin full name")
	flag.Parse()

	if *password == "" {
		log.Fatal("a password is required: pass -password or set SEED_ADMIN_PASSWORD")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	svc := admin.NewService(
		repository.NewUserRepository(db),
		repository.NewAgentRepository(db),
		repository.NewAuditRepository(db),
		notify.NewLogSender(),
	)

	user, err := svc.Seed(context.Background(), admin.SeedRequest{
		FullName: *name,
		Email:    *email,
		Password: *password,
	})
	if errors.Is(err, admin.ErrAdminsExist) {
		log.Println("admin accounts already exist, nothing to do")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("super admin created: id=%d email=%s", user.ID, user.Email)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
