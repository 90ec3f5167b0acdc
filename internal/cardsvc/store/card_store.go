package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaya-apps/pokecard-services/internal/cardsvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) Insert(ctx context.Context, nom, photo string, degats, pv models.Stat) (*models.Card, error) {
	query := `
		INSERT INTO cards (nom, photo, degats, pv)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nom, photo, degats, pv
	`

	var card models.Card
	err := s.db.QueryRow(ctx, query, nom, photo, degats, pv).Scan(
		&card.ID,
		&card.Nom,
		&card.Photo,
		&card.Degats,
		&card.PV,
	)
	if err != nil {
		return nil, fmt.Errorf("could not insert card: %w", err)
	}

	return &card, nil
}

func (s *CardStore) List(ctx context.Context) ([]models.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, nom, photo, degats, pv
		FROM cards
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID,
			&card.Nom,
			&card.Photo,
			&card.Degats,
			&card.PV,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read card rows: %w", err)
	}

	return cards, nil
}

// GetByID returns nil without error when no row matches.
func (s *CardStore) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `
		SELECT id, nom, photo, degats, pv
		FROM cards
		WHERE id = $1
		LIMIT 1
	`

	var card models.Card
	err := s.db.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.Nom,
		&card.Photo,
		&card.Degats,
		&card.PV,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not get card by id: %w", err)
	}

	return &card, nil
}

// Update rewrites all four business columns and returns nil without
// error when no row matches.
func (s *CardStore) Update(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := `
		UPDATE cards
		SET nom = $1, photo = $2, degats = $3, pv = $4
		WHERE id = $5
		RETURNING id, nom, photo, degats, pv
	`

	var updated models.Card
	err := s.db.QueryRow(ctx, query, card.Nom, card.Photo, card.Degats, card.PV, card.ID).Scan(
		&updated.ID,
		&updated.Nom,
		&updated.Photo,
		&updated.Degats,
		&updated.PV,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not update card: %w", err)
	}

	return &updated, nil
}

// Delete reports whether a row was removed.
func (s *CardStore) Delete(ctx context.Context, id int64) (bool, error) {
	var deletedID int64
	err := s.db.QueryRow(ctx, `
		DELETE FROM cards
		WHERE id = $1
		RETURNING id
	`, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("could not delete card: %w", err)
	}

	return true, nil
}
