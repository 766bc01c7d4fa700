package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/vshevel/roombooking/internal/domain"
	"go.uber.org/zap"
)

// Manager persists the full booking collection to a single file. Every save
// rewrites the whole file, so the file is always a complete, self-contained
// snapshot of the store. The gob encoding carries no version tag: if the
// Booking shape changes, Load fails and the caller starts empty.
type Manager struct {
	path string
	log  *zap.Logger
}

func NewManager(path string, log *zap.Logger) *Manager {
	return &Manager{path: path, log: log}
}

func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether a snapshot file is present. It does not validate
// the contents.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Load reads and decodes the snapshot file into a fresh map. The result is
// meant to replace the store's contents wholesale, never to be merged.
func (m *Manager) Load() (map[uint32]domain.Booking, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", m.path, err)
	}

	bookings := make(map[uint32]domain.Booking)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&bookings); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", m.path, err)
	}
	return bookings, nil
}

// Save encodes the full collection and overwrites the snapshot file in one
// pass. Failures are logged and reported as false, never propagated: a
// failed snapshot write must not abort the booking operation that
// triggered it.
func (m *Manager) Save(bookings map[uint32]domain.Booking) bool {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bookings); err != nil {
		m.log.Error("encode snapshot", zap.String("path", m.path), zap.Error(err))
		return false
	}

	if err := os.WriteFile(m.path, buf.Bytes(), 0o644); err != nil {
		m.log.Error("write snapshot", zap.String("path", m.path), zap.Error(err))
		return false
	}
	return true
}
