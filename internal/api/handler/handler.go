package handler

import (
	"time"

	"flashchat/backend/internal/relay"
	"flashchat/backend/internal/storage"
	"flashchat/backend/internal/token"
)

// Handler тримає залежності всіх HTTP-ендпоінтів.
type Handler struct {
	Storage  storage.Storage
	Tokens   *token.Service
	Registry *relay.Registry
	Router   *relay.Router
	// Loc is the timezone used for daily card-statistics boundaries.
	Loc *time.Location
}

func NewHandler(s storage.Storage, tokens *token.Service, registry *relay.Registry, router *relay.Router, loc *time.Location) *Handler {
	return &Handler{
		Storage:  s,
		Tokens:   tokens,
		Registry: registry,
		Router:   router,
		Loc:      loc,
	}
}
