package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"codeberg.org/miketth/hyprkeys/pkg/appstate/sqlite/migrations"
	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
)

const (
	getStateQuery = `select layout, variant, mode, updated_at from app_state where app = ?`
	setStateQuery = `insert into app_state (app, layout, variant, mode, updated_at)
values (?, ?, ?, ?, ?)
on conflict (app) do update set
    layout = excluded.layout,
    variant = excluded.variant,
    mode = excluded.mode,
    updated_at = excluded.updated_at`
)

type StateStore struct {
	db *sql.DB
}

func NewStateStore(filename string, log *zap.SugaredLogger) (*StateStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &StateStore{db: db}, nil
}

func (s *StateStore) Close() error {
	return s.db.Close()
}

func (s *StateStore) GetAppState(app keymap.AppID) (hyprkeys.AppState, bool, error) {
	var (
		state     hyprkeys.AppState
		mode      string
		updatedAt int64
	)

	row := s.db.QueryRowContext(context.Background(), getStateQuery, string(app))
	err := row.Scan(&state.Layout, &state.Variant, &mode, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return hyprkeys.AppState{}, false, nil
	case err != nil:
		return hyprkeys.AppState{}, false, fmt.Errorf("sqlite select: %w", err)
	}

	state.Mode, err = keymap.ParseLayoutMode(mode)
	if err != nil {
		return hyprkeys.AppState{}, false, fmt.Errorf("stored state of %s: %w", app, err)
	}
	state.UpdatedAt = time.Unix(updatedAt, 0)

	return state, true, nil
}

func (s *StateStore) SetAppState(app keymap.AppID, state hyprkeys.AppState) error {
	_, err := s.db.ExecContext(context.Background(), setStateQuery,
		string(app), state.Layout, state.Variant, state.Mode.String(), state.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
