package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/xaenox/biograph/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveEvent(ctx context.Context, event *models.TimelineEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("error encoding event metadata: %v", err)
	}

	query := `
		INSERT INTO timeline_events (id, user_id, timestamp, content, category, source, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content, category = EXCLUDED.category, metadata = EXCLUDED.metadata`

	if _, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Timestamp,
		event.Content,
		string(event.Category),
		event.Source,
		metadata,
	); err != nil {
		return fmt.Errorf("error saving event: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetEventsByUserID(ctx context.Context, userID string) ([]*models.TimelineEvent, error) {
	query := `
		SELECT id, user_id, timestamp, content, category, source, metadata
		FROM timeline_events
		WHERE user_id = $1
		ORDER BY timestamp ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %v", err)
	}
	defer rows.Close()

	var events []*models.TimelineEvent
	for rows.Next() {
		event := &models.TimelineEvent{}
		var category sql.NullString
		var metadata []byte

		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Timestamp,
			&event.Content,
			&category,
			&event.Source,
			&metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %v", err)
		}

		event.Category = models.Category(category.String)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("error decoding event metadata: %v", err)
			}
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *PostgresStorage) SaveBiography(ctx context.Context, biography *models.Biography) error {
	document, err := json.Marshal(biography)
	if err != nil {
		return fmt.Errorf("error encoding biography: %v", err)
	}

	query := `
		INSERT INTO biographies (id, user_id, title, style, total_words, total_chapters, cost, generated_at, document)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := s.db.ExecContext(ctx, query,
		biography.ID,
		biography.UserID,
		biography.Title,
		string(biography.Style),
		biography.Metadata.TotalWords,
		biography.Metadata.TotalChapters,
		biography.Metadata.Cost,
		biography.Metadata.GeneratedAt,
		document,
	); err != nil {
		return fmt.Errorf("error saving biography: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetBiography(ctx context.Context, id string) (*models.Biography, error) {
	query := `SELECT document FROM biographies WHERE id = $1`

	var document []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&document); err != nil {
		return nil, fmt.Errorf("error querying biography: %v", err)
	}

	biography := &models.Biography{}
	if err := json.Unmarshal(document, biography); err != nil {
		return nil, fmt.Errorf("error decoding biography: %v", err)
	}
	return biography, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
