package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"boardquest/internal/service"
	"boardquest/internal/transport/rest/handler"
	"boardquest/internal/transport/rest/middleware"
	"boardquest/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	AuthService   *service.AuthService
	RoomService   *service.RoomService
	GameService   *service.GameService
	EventService  *service.EventService
	RewardService *service.RewardService
	TourService   *service.TourService
	WSHub         *ws.Hub
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	roomHandler := handler.NewRoomHandler(c.RoomService)
	gameHandler := handler.NewGameHandler(c.GameService, c.RoomService)
	eventHandler := handler.NewEventHandler(c.EventService)
	rewardHandler := handler.NewRewardHandler(c.RewardService)
	tourHandler := handler.NewTourHandler(c.TourService, c.RoomService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes.
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}", roomHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/leaderboard", roomHandler.Leaderboard).Methods("GET", "OPTIONS")
	// Opportunistic expiry: idempotent, so no auth needed.
	v1.HandleFunc("/rooms/{code}/events/expire", eventHandler.Expire).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param).
	v1.HandleFunc("/ws/rooms/{code}/admin", wsHandler.AdminWS).Methods("GET")
	v1.HandleFunc("/ws/rooms/{code}/player", wsHandler.PlayerWS).Methods("GET")

	// Health check.
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes.
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/rooms", roomHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rooms/{code}/start", roomHandler.Start).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rooms/{code}/end", roomHandler.End).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rooms/{code}", roomHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/rooms/{code}/events", eventHandler.Trigger).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rooms/{code}/events/end", eventHandler.End).Methods("POST", "OPTIONS")

	// Player routes.
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)

	playerRoutes.HandleFunc("/rooms/{code}/roll", gameHandler.Roll).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/answers", gameHandler.Answer).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/questions", roomHandler.Questions).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/leaderboard/me", roomHandler.MyRank).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/rewards/claim", rewardHandler.Claim).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/tour/{location}/messages", tourHandler.PostMessage).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/tour/{location}/messages", tourHandler.Messages).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/tour/{location}/reactions", tourHandler.PostReaction).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/rooms/{code}/tour/{location}/reactions", tourHandler.Reactions).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
