package memory

import (
	"sync"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
)

type StateStore struct {
	lock   sync.Mutex
	states map[keymap.AppID]hyprkeys.AppState
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[keymap.AppID]hyprkeys.AppState),
	}
}

func (s *StateStore) GetAppState(app keymap.AppID) (hyprkeys.AppState, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	state, ok := s.states[app]
	return state, ok, nil
}

func (s *StateStore) SetAppState(app keymap.AppID, state hyprkeys.AppState) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.states[app] = state
	return nil
}
