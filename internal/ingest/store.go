package ingest

import (
	"fmt"

	"conectads/social/internal/db"
)

// Store is a persisted source of profiles and friendships
type Store interface {
	AllProfiles() ([]db.ProfileRow, error)
	AllFriendships() ([]db.FriendshipRow, error)
}

// LoadStore replays a store into the sinks, profiles first. Line numbers in
// the reports are 1-based row positions.
func LoadStore(src Store, profiles ProfileSink, friendships FriendshipSink) (*Report, *Report, error) {
	pr := &Report{}
	rows, err := src.AllProfiles()
	if err != nil {
		return nil, nil, fmt.Errorf("reading profiles: %w", err)
	}
	for i, r := range rows {
		if err := profiles.AddProfile(r.ID, r.FullName, r.Age, r.Gender); err != nil {
			pr.Errors = append(pr.Errors, LineError{Line: i + 1, Err: err})
			continue
		}
		pr.Loaded++
	}

	fr := &Report{}
	edges, err := src.AllFriendships()
	if err != nil {
		return pr, nil, fmt.Errorf("reading friendships: %w", err)
	}
	for i, e := range edges {
		if err := friendships.AddFriendship(e.UserA, e.UserB, e.Quality); err != nil {
			fr.Errors = append(fr.Errors, LineError{Line: i + 1, Err: err})
			continue
		}
		fr.Loaded++
	}
	return pr, fr, nil
}
