package api

import (
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/elevennote/elevennote/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/elevennote/elevennote/internal/api/handlers"
	"github.com/elevennote/elevennote/internal/api/middleware"
	"github.com/elevennote/elevennote/internal/config"
	"github.com/elevennote/elevennote/internal/services"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, logger *slog.Logger) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	issuer := services.NewTokenIssuer(db, services.TokenConfig{
		Secret:     config.Envs.JWT.Secret,
		Issuer:     config.Envs.JWT.Issuer,
		Audience:   config.Envs.JWT.Audience,
		IDClaimKey: config.Envs.JWT.IDClaimKey,
	})
	authHandler := handlers.NewAuthHandler(db, issuer)
	notesHandler := handlers.NewNotesHandler(services.NewNoteStore(db))

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /sign-up", authHandler.Register)
	authMux.HandleFunc("POST /token", authHandler.Token)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("POST /notes", notesHandler.Create)
	protectedMux.HandleFunc("GET /notes", notesHandler.List)
	protectedMux.HandleFunc("GET /notes/{id}", notesHandler.Get)
	protectedMux.HandleFunc("PUT /notes/{id}", notesHandler.Update)
	protectedMux.HandleFunc("DELETE /notes/{id}", notesHandler.Delete)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	handler := c.Handler(mainMux)
	handler = middleware.Logger(logger, handler)
	return handler
}
