// Package archive persists generated cases so that past mysteries remain
// browsable after the session that produced them is gone.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ArchivedCase is a stored case plus the settings it was generated with.
type ArchivedCase struct {
	ID         string            `db:"id" json:"id"`
	CreatedAt  time.Time         `db:"created_at" json:"createdAt"`
	Difficulty models.Difficulty `db:"difficulty" json:"difficulty"`
	Language   models.Language   `db:"language" json:"language"`
	Case       models.Case       `db:"-" json:"case"`
}

type archivedCaseRow struct {
	ID         string `db:"id"`
	CreatedAt  string `db:"created_at"`
	Difficulty string `db:"difficulty"`
	Language   string `db:"language"`
	Payload    string `db:"payload"`
}

// CaseRepository stores and lists archived cases.
type CaseRepository struct {
	readWriteDB *sqlx.DB
	readDB      *sqlx.DB
	logger      *slog.Logger
}

func NewCaseRepository(readWriteDB, readDB *sqlx.DB, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		readWriteDB: readWriteDB,
		readDB:      readDB,
		logger:      logger.With("source", "CaseRepository"),
	}
}

// Save archives a generated case and returns its assigned ID.
func (r *CaseRepository) Save(
	ctx context.Context,
	kase models.Case,
	difficulty models.Difficulty,
	language models.Language,
) (string, error) {
	payload, err := json.Marshal(kase)
	if err != nil {
		return "", errors.Wrap(err, "marshal case payload")
	}

	id := uuid.NewString()
	stmt := `INSERT INTO cases (id, difficulty, language, title, culprit, payload)
VALUES (@id, @difficulty, @language, @title, @culprit, @payload)`
	params := []any{
		sql.Named("id", id),
		sql.Named("difficulty", string(difficulty)),
		sql.Named("language", string(language)),
		sql.Named("title", kase.Title),
		sql.Named("culprit", kase.Culprit),
		sql.Named("payload", string(payload)),
	}
	if _, err = r.readWriteDB.ExecContext(ctx, stmt, params...); err != nil {
		return "", errors.Wrap(err, "insert case", slog.String("title", kase.Title))
	}
	return id, nil
}

// List returns up to limit archived cases, newest first.
func (r *CaseRepository) List(ctx context.Context, limit int) ([]ArchivedCase, error) {
	stmt := `SELECT id, created_at, difficulty, language, payload
FROM cases
ORDER BY created_at DESC
LIMIT ?`
	var rows []archivedCaseRow
	if err := r.readDB.SelectContext(ctx, &rows, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "query cases")
	}

	archived := make([]ArchivedCase, 0, len(rows))
	for _, row := range rows {
		item, err := row.toArchivedCase()
		if err != nil {
			// A corrupt payload should not hide the rest of the archive.
			r.logger.LogAttrs(ctx, slog.LevelWarn, "skipping unreadable archived case",
				slog.String("id", row.ID), errors.SlogError(err))
			continue
		}
		archived = append(archived, item)
	}
	return archived, nil
}

// Get returns a single archived case by ID.
func (r *CaseRepository) Get(ctx context.Context, id string) (*ArchivedCase, error) {
	stmt := `SELECT id, created_at, difficulty, language, payload FROM cases WHERE id = ?`
	var row archivedCaseRow
	if err := r.readDB.GetContext(ctx, &row, stmt, id); err != nil {
		return nil, errors.Wrap(err, "read case", slog.String("id", id))
	}
	item, err := row.toArchivedCase()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (row archivedCaseRow) toArchivedCase() (ArchivedCase, error) {
	var kase models.Case
	if err := json.Unmarshal([]byte(row.Payload), &kase); err != nil {
		return ArchivedCase{}, errors.Wrap(err, "unmarshal case payload", slog.String("id", row.ID))
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return ArchivedCase{}, errors.Wrap(err, "parse created_at", slog.String("id", row.ID))
	}
	return ArchivedCase{
		ID:         row.ID,
		CreatedAt:  createdAt,
		Difficulty: models.Difficulty(row.Difficulty),
		Language:   models.Language(row.Language),
		Case:       kase,
	}, nil
}
