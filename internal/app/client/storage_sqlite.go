package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"payanam/internal/domain/trip"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trips (
			owner_id TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			payload TEXT NOT NULL,
			synced_at DATETIME NOT NULL,
			PRIMARY KEY (owner_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_trips_owner_position ON trips(owner_id, position);
	`)

	return err
}

// SaveTrips заменяет копию поездок владельца целиком
func (s *SQLiteStorage) SaveTrips(ownerID string, trips []trip.Trip) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM trips WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("ошибка очистки поездок: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trips (owner_id, id, position, payload, synced_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	syncedAt := time.Now().UTC().Format(time.RFC3339)
	for i, t := range trips {
		payload, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("ошибка сериализации поездки %s: %w", t.ID, err)
		}
		if _, err := stmt.Exec(ownerID, t.ID, i, string(payload), syncedAt); err != nil {
			return fmt.Errorf("ошибка сохранения поездки %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}

// ListTrips возвращает поездки в порядке последней загрузки
func (s *SQLiteStorage) ListTrips(ownerID string) ([]trip.Trip, error) {
	rows, err := s.db.Query(
		"SELECT payload FROM trips WHERE owner_id = ? ORDER BY position",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	trips := []trip.Trip{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("ошибка сканирования поездки: %w", err)
		}

		var t trip.Trip
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, fmt.Errorf("ошибка парсинга поездки: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения поездок: %w", err)
	}

	return trips, nil
}

func (s *SQLiteStorage) CountTrips(ownerID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trips WHERE owner_id = ?", ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета поездок: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
