package recommend

import (
	"errors"

	"github.com/ternarybob/vibecheck/internal/models"
)

// ErrInvalidState is returned when the session carries a current venue
// with no recorded disposition. The caller must mark it liked or rejected
// before asking for another candidate.
var ErrInvalidState = errors.New("current venue must be marked as liked or rejected")

// ErrPoolExhausted is returned when every venue in the pool has already
// been seen, liked, or rejected. A new pool is needed to continue.
var ErrPoolExhausted = errors.New("no more venues available")

// NextCandidate selects the next unexcluded venue from the pool in pool
// order and reports how many unexcluded venues remain after it.
func NextCandidate(pool []models.Venue, state *models.SessionState) (*models.Venue, int, error) {
	if state.Current != "" && !state.HasDisposition(state.Current) {
		return nil, 0, ErrInvalidState
	}

	excluded := state.Exclusion()

	var candidate *models.Venue
	remaining := 0
	for i := range pool {
		if excluded[pool[i].ID] {
			continue
		}
		if candidate == nil {
			candidate = &pool[i]
			continue
		}
		remaining++
	}

	if candidate == nil {
		return nil, 0, ErrPoolExhausted
	}
	return candidate, remaining, nil
}
