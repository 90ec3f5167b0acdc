package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yaya-apps/pokecard-services/internal/cardsvc/broker"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/service"
)

type Handler struct {
	cards  *service.CardService
	broker *broker.Broker
}

func NewHandler(cards *service.CardService, b *broker.Broker) *Handler {
	return &Handler{cards: cards, broker: b}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func (h *Handler) ServerStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Server is running"))
}
