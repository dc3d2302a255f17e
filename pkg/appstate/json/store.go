package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
)

type appState struct {
	Layout    string    `json:"layout"`
	Variant   string    `json:"variant"`
	Mode      string    `json:"mode"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateStore keeps app state in memory and writes it to a JSON file from
// SaveLooper.
type StateStore struct {
	states map[keymap.AppID]appState
	file   *os.File
	lock   sync.Mutex
	dirty  bool
}

func NewStateStore(filename string) (*StateStore, error) {
	fileExists := true
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &StateStore{
		states: make(map[keymap.AppID]appState),
		file:   file,
		dirty:  true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *StateStore) Close() error {
	return s.file.Close()
}

func (s *StateStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}

	_, err = s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = json.NewDecoder(s.file).Decode(&s.states)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// Save writes the states if they changed since the last save.
func (s *StateStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	err = json.NewEncoder(s.file).Encode(s.states)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper saves every interval until ctx is done, then saves once more
// and closes the file.
func (s *StateStore) SaveLooper(ctx context.Context, interval time.Duration) error {
	defer s.file.Close()

	for {
		select {
		case <-ctx.Done():
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(interval):
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *StateStore) GetAppState(app keymap.AppID) (hyprkeys.AppState, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	st, ok := s.states[app]
	if !ok {
		return hyprkeys.AppState{}, false, nil
	}

	mode, err := keymap.ParseLayoutMode(st.Mode)
	if err != nil {
		return hyprkeys.AppState{}, false, fmt.Errorf("stored state of %s: %w", app, err)
	}

	return hyprkeys.AppState{
		Layout:    st.Layout,
		Variant:   st.Variant,
		Mode:      mode,
		UpdatedAt: st.UpdatedAt,
	}, true, nil
}

func (s *StateStore) SetAppState(app keymap.AppID, state hyprkeys.AppState) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.states[app] = appState{
		Layout:    state.Layout,
		Variant:   state.Variant,
		Mode:      state.Mode.String(),
		UpdatedAt: state.UpdatedAt,
	}
	s.dirty = true
	return nil
}
