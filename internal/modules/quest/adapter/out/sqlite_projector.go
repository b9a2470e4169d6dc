package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"questbook/internal/modules/quest/domain"
	questout "questbook/internal/modules/quest/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteIndexProjector struct {
	db *sql.DB
}

func NewSQLiteIndexProjector(dbPath string) (questout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteIndexProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteIndexProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS quests (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  author TEXT,
  difficulty TEXT,
  description TEXT,
  icon TEXT NOT NULL,
  page_count INTEGER NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create quests table: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("reset quests index: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Upsert(ctx context.Context, quest domain.Quest) error {
	const stmt = `
INSERT INTO quests (id, display_name, author, difficulty, description, icon, page_count, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  display_name=excluded.display_name,
  author=excluded.author,
  difficulty=excluded.difficulty,
  description=excluded.description,
  icon=excluded.icon,
  page_count=excluded.page_count,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		quest.ID,
		quest.DisplayName,
		quest.Author,
		quest.Difficulty,
		quest.Description,
		quest.Icon,
		len(quest.Pages),
		quest.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("upsert quest: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete quest from index: %w", err)
	}
	return nil
}
