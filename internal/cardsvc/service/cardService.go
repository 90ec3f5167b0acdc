package service

import (
	"context"
	"errors"

	"github.com/yaya-apps/pokecard-services/internal/cardsvc/models"
)

// ErrIncompleteCard rejects a create with any missing business field.
var ErrIncompleteCard = errors.New("incomplete card data")

// CardStore is the persistence surface the service needs. Lookups
// return nil without error when no row matches.
type CardStore interface {
	Insert(ctx context.Context, nom, photo string, degats, pv models.Stat) (*models.Card, error)
	List(ctx context.Context) ([]models.Card, error)
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	Update(ctx context.Context, card *models.Card) (*models.Card, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CardService struct {
	store CardStore
}

func NewCardService(store CardStore) *CardService {
	return &CardService{store: store}
}

func (s *CardService) CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error) {
	if !in.Complete() {
		return nil, ErrIncompleteCard
	}
	return s.store.Insert(ctx, *in.Nom, *in.Photo, *in.Degats, *in.PV)
}

func (s *CardService) ListCards(ctx context.Context) ([]models.Card, error) {
	return s.store.List(ctx)
}

func (s *CardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateCard merges the supplied fields into the stored card and
// rewrites the row. The read and the write are two independent
// statements; a concurrent writer wins by ordering.
func (s *CardService) UpdateCard(ctx context.Context, id int64, in models.CardInput) (*models.Card, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	in.MergeInto(existing)

	return s.store.Update(ctx, existing)
}

func (s *CardService) DeleteCard(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}
