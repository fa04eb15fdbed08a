package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"courtside/internal/delivery/http/controllers"
	"courtside/internal/delivery/http/middleware"
	"courtside/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	memberController *controllers.MemberController,
	participationController *controllers.ParticipationController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events: list and roster are readable anonymously; participation flags
	// are filled in when a valid token is supplied.
	mux.HandleFunc("GET /events", optionalAuth(participationController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("GET /events/{eventID}/roster", participationController.GetRoster)
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// Participation
	mux.HandleFunc("POST /events/{eventID}/join", requireAuth(participationController.Join))
	mux.HandleFunc("DELETE /events/{eventID}/join", requireAuth(participationController.Cancel))

	// Members
	mux.HandleFunc("POST /members", requireAuth(memberController.Register))
	mux.HandleFunc("GET /members/me", requireAuth(memberController.Me))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
