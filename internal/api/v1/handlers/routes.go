package handlers

import (
	"net/http"

	v1chat "github.com/echo-relay/echo/internal/api/v1/handlers/chat"
	v1news "github.com/echo-relay/echo/internal/api/v1/handlers/news"
	v1websocket "github.com/echo-relay/echo/internal/api/v1/handlers/websocket"
	v1mware "github.com/echo-relay/echo/internal/api/v1/middleware"
	"github.com/echo-relay/echo/internal/config"
	"github.com/echo-relay/echo/internal/services"
	"github.com/echo-relay/echo/pkg/httpext"
	"github.com/gorilla/mux"
)

// HealthStatus is the body of the health check
const HealthStatus = "Echo backend running"

// HandleHealth reports that the service is up
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, map[string]string{"status": HealthStatus})
}

// RegisterRoutes mounts the health check and every v1 route
func RegisterRoutes(router *mux.Router, services *services.Services) {
	router.Use(v1mware.Recover, v1mware.RequestLogger)
	router.HandleFunc("/", HandleHealth).Methods("GET")

	RegisterV1Routes(router, services)
}

func RegisterV1Routes(router *mux.Router, services *services.Services) {
	maxBody := config.GetMaxBodyBytes()

	// v1 routes
	v1 := router.PathPrefix("/v1").Subrouter()

	// Chat routes
	v1.Handle("/chat", v1mware.BodyLimit(maxBody)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v1chat.HandleChat(services.GetChatService(), w, r)
	}))).Methods("POST")
	v1.HandleFunc("/chat/ws", func(w http.ResponseWriter, r *http.Request) {
		v1websocket.HandleChatWebSocket(services.GetChatService(), services.GetConnectionManager(), maxBody, w, r)
	}).Methods("GET")

	// Headline browsing
	v1.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		var client v1news.HeadlineClient
		if svc := services.GetNewsService(); svc != nil {
			client = svc
		}
		v1news.HandleHeadlines(client, w, r)
	}).Methods("GET")
}
