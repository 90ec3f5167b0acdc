package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/yaya-apps/pokecard-services/internal/cardsvc/models"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/service"
)

const (
	msgIncompleteData = "incomplete data"
	msgCardNotFound   = "card not found"
	msgInternalError  = "internal server error"
	msgCardDeleted    = "card deleted successfully"
)

// cardID parses the :id route param; any non-numeric id falls into
// the not-found bucket.
func cardID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var in models.CardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgIncompleteData)
		return
	}

	card, err := h.cards.CreateCard(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrIncompleteCard) {
			writeMessage(w, http.StatusBadRequest, msgIncompleteData)
			return
		}
		log.Errorf("Error [CardService.CreateCard] %s", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	h.broker.PublishCardEvent("created", card)
	writeJSON(w, http.StatusCreated, card)
}

func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.ListCards(r.Context())
	if err != nil {
		log.Errorf("Error [CardService.ListCards] %s", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgCardNotFound)
		return
	}

	card, err := h.cards.GetCard(r.Context(), id)
	if err != nil {
		log.Errorf("Error [CardService.GetCard] %s", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if card == nil {
		writeMessage(w, http.StatusNotFound, msgCardNotFound)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (h *Handler) UpdateCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgCardNotFound)
		return
	}

	var in models.CardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgIncompleteData)
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), id, in)
	if err != nil {
		log.Errorf("Error [CardService.UpdateCard] %s", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if card == nil {
		writeMessage(w, http.StatusNotFound, msgCardNotFound)
		return
	}

	h.broker.PublishCardEvent("updated", card)
	writeJSON(w, http.StatusOK, card)
}

func (h *Handler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgCardNotFound)
		return
	}

	deleted, err := h.cards.DeleteCard(r.Context(), id)
	if err != nil {
		log.Errorf("Error [CardService.DeleteCard] %s", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, msgCardNotFound)
		return
	}

	h.broker.PublishCardEvent("deleted", &models.Card{ID: id})
	writeMessage(w, http.StatusOK, msgCardDeleted)
}
