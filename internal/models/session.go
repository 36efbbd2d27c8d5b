package models

import "fmt"

// SessionState is the caller-held swipe session. It has no server-side
// persistence; the caller supplies it on every request and appends ids to the
// appropriate sets as the session advances.
type SessionState struct {
	Seen     []string `json:"seen"`
	Liked    []string `json:"liked"`
	Rejected []string `json:"rejected"`
	Current  string   `json:"current,omitempty"`
}

// Validate checks the session invariants: liked and rejected are disjoint,
// and a set current id must already carry a disposition.
func (s *SessionState) Validate() error {
	liked := make(map[string]bool, len(s.Liked))
	for _, id := range s.Liked {
		liked[id] = true
	}
	for _, id := range s.Rejected {
		if liked[id] {
			return fmt.Errorf("venue %s is both liked and rejected", id)
		}
	}

	if s.Current != "" && !s.HasDisposition(s.Current) {
		return fmt.Errorf("current venue %s has no disposition", s.Current)
	}

	return nil
}

// HasDisposition reports whether the id is in liked or rejected.
func (s *SessionState) HasDisposition(id string) bool {
	for _, v := range s.Liked {
		if v == id {
			return true
		}
	}
	for _, v := range s.Rejected {
		if v == id {
			return true
		}
	}
	return false
}

// Exclusion returns the set of venue ids excluded from selection,
// seen + liked + rejected.
func (s *SessionState) Exclusion() map[string]bool {
	excluded := make(map[string]bool, len(s.Seen)+len(s.Liked)+len(s.Rejected))
	for _, id := range s.Seen {
		excluded[id] = true
	}
	for _, id := range s.Liked {
		excluded[id] = true
	}
	for _, id := range s.Rejected {
		excluded[id] = true
	}
	return excluded
}
