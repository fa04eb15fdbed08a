package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"courtside/config"
	authadapter "courtside/internal/adapters/auth"
	emailadapter "courtside/internal/adapters/email"
	delivery "courtside/internal/delivery/http"
	"courtside/internal/delivery/http/controllers"
	"courtside/internal/delivery/http/middleware"
	"courtside/internal/repository/postgres"
	"courtside/internal/services"

	_ "courtside/docs"
)

const (
	serviceTimeout = 10 * time.Second
	bcryptCost     = 10
)

// @title Courtside API
// @version 1.0
// @description Event participation service: events, member profiles, join/cancel, rosters.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcryptCost)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, logger)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	memberService := services.NewMemberService(memberRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, membershipRepo, memberRepo, serviceTimeout)
	participationService := services.NewParticipationService(eventRepo, membershipRepo, memberRepo, userRepo, emailService, serviceTimeout)
	rosterService := services.NewRosterService(eventRepo, membershipRepo, memberRepo, cfg.RosterUnresolved, serviceTimeout)

	// Controllers
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	memberController := controllers.NewMemberController(logger, memberService)
	participationController := controllers.NewParticipationController(logger, participationService, rosterService)

	mux := delivery.NewRouter(authController, eventController, memberController, participationController, tokenVerifier)

	handler := middleware.RequestID(
		middleware.LoggingMiddleware(logger,
			middleware.CORS(cfg.AllowedOrigins, mux),
		),
	)

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
