package handler

import (
	"net/http"

	"maritime-ai-server/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware(container.Logger))
	router.Use(RecoveryMiddleware(container.Logger))

	// Root and health endpoints
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Maritime AI Backend is running!"})
	}).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"maritime-ai-server"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Initialize handlers
	uploadHandler := NewUploadHandler(container.Pipeline, container.Config.GetMaxFileSize(), container.Logger)
	chatHandler := NewChatHandler(container.Chat, container.Logger)
	portHandler := NewPortHandler(container.PortDirectory, container.Logger)

	// Charter party ingestion routes
	api.HandleFunc("/upload-cp", uploadHandler.UploadCP).Methods("POST")
	api.HandleFunc("/documents/upload", uploadHandler.UploadCP).Methods("POST")

	// Assistant routes
	api.HandleFunc("/chat", chatHandler.Chat).Methods("POST")
	api.HandleFunc("/ports/{name}", portHandler.GetPort).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: container.Config.GetCORSOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
