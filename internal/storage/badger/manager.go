package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db     *BadgerDB
	venue  interfaces.VenueStorage
	vibe   interfaces.VibeStorage
	logger arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		venue:  NewVenueStorage(db, logger),
		vibe:   NewVibeStorage(db, logger),
		logger: logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// VenueStorage returns the venue storage interface
func (m *Manager) VenueStorage() interfaces.VenueStorage {
	return m.venue
}

// VibeStorage returns the vibe analysis storage interface
func (m *Manager) VibeStorage() interfaces.VibeStorage {
	return m.vibe
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
