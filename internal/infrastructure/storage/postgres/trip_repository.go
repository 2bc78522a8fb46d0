package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"payanam/internal/domain/trip"
)

const tripColumns = `id::text, user_id::text, title, destination,
	to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
	budget, travelers, description, image, itinerary, created_at`

func NewTripRepository(pool *pgxpool.Pool, log *slog.Logger) *TripRepository {
	return &TripRepository{
		pool: pool,
		log:  log,
	}
}

type TripRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ trip.Repository = (*TripRepository)(nil)

func (r *TripRepository) List(ctx context.Context, ownerID string) ([]trip.Trip, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1::uuid ORDER BY created_at DESC, id`,
		ownerID)
	if err != nil {
		if pgCode(err) == codeInvalidTextRepr {
			return []trip.Trip{}, nil
		}
		return nil, fmt.Errorf("select trips: %w", err)
	}
	defer rows.Close()

	trips := []trip.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		if pgCode(err) == codeInvalidTextRepr {
			return []trip.Trip{}, nil
		}
		return nil, fmt.Errorf("read trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) Get(ctx context.Context, ownerID, id string) (trip.Trip, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, ownerID)

	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidTextRepr {
			return trip.Trip{}, trip.ErrNotFound
		}
		return trip.Trip{}, err
	}
	return t, nil
}

func (r *TripRepository) Create(ctx context.Context, t trip.Trip) error {
	itinerary, err := encodeItinerary(t.Itinerary)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO trips (id, user_id, title, destination, start_date, end_date,
		                    budget, travelers, description, image, itinerary, created_at)
		 VALUES ($1::uuid, $2::uuid, $3, $4, $5::date, $6::date, $7, $8, $9, $10, $11::jsonb, $12)`,
		t.ID, t.OwnerID, t.Title, t.Destination, t.StartDate, t.EndDate,
		t.Budget, t.Travelers, t.Description, t.Image, itinerary, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *TripRepository) Update(ctx context.Context, t trip.Trip) error {
	itinerary, err := encodeItinerary(t.Itinerary)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE trips
		 SET title = $3, start_date = $4::date, end_date = $5::date, budget = $6,
		     travelers = $7, description = $8, image = $9, itinerary = $10::jsonb
		 WHERE id = $1::uuid AND user_id = $2::uuid`,
		t.ID, t.OwnerID, t.Title, t.StartDate, t.EndDate, t.Budget,
		t.Travelers, t.Description, t.Image, itinerary)
	if err != nil {
		if pgCode(err) == codeInvalidTextRepr {
			return trip.ErrNotFound
		}
		return fmt.Errorf("update trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trip.ErrNotFound
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM trips WHERE id = $1::uuid AND user_id = $2::uuid`, id, ownerID)
	if err != nil {
		if pgCode(err) == codeInvalidTextRepr {
			return trip.ErrNotFound
		}
		return fmt.Errorf("delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trip.ErrNotFound
	}
	return nil
}

func scanTrip(row pgx.Row) (trip.Trip, error) {
	var (
		t         trip.Trip
		itinerary []byte
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Destination,
		&t.StartDate, &t.EndDate, &t.Budget, &t.Travelers,
		&t.Description, &t.Image, &itinerary, &t.CreatedAt)
	if err != nil {
		return trip.Trip{}, err
	}

	t.Itinerary = trip.Itinerary{}
	if len(itinerary) > 0 {
		if err := json.Unmarshal(itinerary, &t.Itinerary); err != nil {
			return trip.Trip{}, fmt.Errorf("decode itinerary of trip %s: %w", t.ID, err)
		}
	}
	return t, nil
}

func encodeItinerary(it trip.Itinerary) (string, error) {
	if it == nil {
		it = trip.Itinerary{}
	}
	b, err := json.Marshal(it)
	if err != nil {
		return "", fmt.Errorf("encode itinerary: %w", err)
	}
	return string(b), nil
}
