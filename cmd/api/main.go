package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"agromart/internal/config"
	"agromart/internal/database"
	"agromart/internal/middleware"
	"agromart/internal/modules/admin"
	"agromart/internal/modules/agent"
	"agromart/internal/modules/auth"
	"agromart/internal/modules/buyer"
	"agromart/internal/modules/password"
	"agromart/internal/modules/trader"
	"agromart/internal/notify"
	"agromart/internal/otp"
	"agromart/internal/pkg/response"
	"agromart/internal/pkg/token"
	"agromart/internal/repository"
)

func main() {
	_ = godotenv.Load()

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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	users := repository.NewUserRepository(db)
	traders := repository.NewTraderRepository(db)
	agents := repository.NewAgentRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	audit := repository.NewAuditRepository(db)

	tokens := token.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.RefreshTTL)
	otps := otp.NewLedger(redisClient, cfg.OTPTTL)
	notifier := notify.NewLogSender()
	exposeOTP := cfg.ExposeOTP()

	authHandler := auth.NewHandler(auth.NewService(users, otps, tokens, notifier, exposeOTP))
	passwordHandler := password.NewHandler(password.NewService(users, otps, notifier))

	traderService := trader.NewService(users, traders, otps, tokens, notifier, exposeOTP)
	traderHandler := trader.NewHandler(traderService)

	agentHandler := agent.NewHandler(agent.NewService(
		users, agents, attendance, otps, traderService, traders, notifier, exposeOTP,
	))
	buyerHandler := buyer.NewHandler(buyer.NewService(users, tokens))
	adminHandler := admin.NewHandler(admin.NewService(users, agents, audit, notifier))

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Authenticate(tokens, users))
	{
		authHandler.RegisterPublicRoutes(v1)
		passwordHandler.RegisterPublicRoutes(v1)
		traderHandler.RegisterPublicRoutes(v1)
		agentHandler.RegisterPublicRoutes(v1)
		buyerHandler.RegisterPublicRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth())
		{
			passwordHandler.RegisterProtectedRoutes(protected)
			traderHandler.RegisterProtectedRoutes(protected)
			agentHandler.RegisterProtectedRoutes(protected)
			adminHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("user service listening on %s (env=%s)", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
