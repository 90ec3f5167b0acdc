package broker

import (
	"encoding/json"

	"github.com/yaya-apps/pokecard-services/internal/cardsvc/models"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const cardEventsSubject = "card.events"

type Broker struct {
	Conn *nats.Conn
}

type CardEvent struct {
	Event string       `json:"event"`
	Card  *models.Card `json:"card"`
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishCardEvent is fire-and-forget: a nil broker drops the event,
// and publish failures are logged without affecting the request.
func (b *Broker) PublishCardEvent(event string, card *models.Card) {
	if b == nil || b.Conn == nil {
		return
	}

	data, err := json.Marshal(CardEvent{Event: event, Card: card})
	if err != nil {
		log.Errorf("Error marshaling card event %s", err)
		return
	}

	if err := b.Conn.Publish(cardEventsSubject, data); err != nil {
		log.Errorf("Error publishing card event %s", err)
	}
}
