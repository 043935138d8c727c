//go:build !libretro

package standalone

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user-none/efuse/standalone/storage"
)

const saveSlots = 10

// stateSaver is the snapshot half of the core used for saving.
type stateSaver interface {
	SerializeSize() int
	Serialize(dst []byte) error
}

// stateLoader restores a snapshot.
type stateLoader interface {
	Unserialize(src []byte) error
}

// SaveStateManager handles save state slots for the running content. States
// are the core's SZX snapshots, one file per slot.
type SaveStateManager struct {
	currentSlot  int
	game         string
	notification *Notification
	dir          func() (string, error)
}

// NewSaveStateManager creates a new save state manager
func NewSaveStateManager(notification *Notification) *SaveStateManager {
	return &SaveStateManager{
		notification: notification,
		dir:          storage.GetSavesDir,
	}
}

// SetGame selects the save directory for a content path. An empty path is
// the plain BASIC session.
func (m *SaveStateManager) SetGame(contentPath string) {
	m.game = gameKey(contentPath)
	m.currentSlot = 0
}

// gameKey names the save directory for a content path.
func gameKey(contentPath string) string {
	if contentPath == "" {
		return "basic"
	}
	base := filepath.Base(contentPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, base)
	if base == "" || base == "." {
		return "basic"
	}
	return base
}

// GetCurrentSlot returns the current save slot
func (m *SaveStateManager) GetCurrentSlot() int {
	return m.currentSlot
}

// NextSlot cycles to the next save slot
func (m *SaveStateManager) NextSlot() {
	m.currentSlot = (m.currentSlot + 1) % saveSlots
	m.notify(fmt.Sprintf("Slot %d", m.currentSlot))
}

// PreviousSlot cycles to the previous save slot
func (m *SaveStateManager) PreviousSlot() {
	m.currentSlot--
	if m.currentSlot < 0 {
		m.currentSlot = saveSlots - 1
	}
	m.notify(fmt.Sprintf("Slot %d", m.currentSlot))
}

func (m *SaveStateManager) statePath() (string, error) {
	if m.game == "" {
		return "", fmt.Errorf("no game set")
	}
	savesDir, err := m.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(savesDir, m.game, fmt.Sprintf("state-%d.szx", m.currentSlot)), nil
}

// Save writes the current state to the current slot
func (m *SaveStateManager) Save(s stateSaver) error {
	statePath, err := m.statePath()
	if err != nil {
		return err
	}

	size := s.SerializeSize()
	if size == 0 {
		return fmt.Errorf("no state to save")
	}
	state := make([]byte, size)
	if err := s.Serialize(state); err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(statePath), 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	if err := os.WriteFile(statePath, state, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	m.notify(fmt.Sprintf("State saved to slot %d", m.currentSlot))
	return nil
}

// Load restores the state from the current slot
func (m *SaveStateManager) Load(l stateLoader) error {
	statePath, err := m.statePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		m.notify(fmt.Sprintf("No save in slot %d", m.currentSlot))
		return fmt.Errorf("no save in slot %d", m.currentSlot)
	}

	state, err := os.ReadFile(statePath)
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}

	if err := l.Unserialize(state); err != nil {
		m.notify("State could not be loaded")
		return fmt.Errorf("failed to restore state: %w", err)
	}

	m.notify("State loaded")
	return nil
}

func (m *SaveStateManager) notify(msg string) {
	if m.notification != nil {
		m.notification.ShowShort(msg)
	}
}
