package social

import (
	"conectads/social/internal/graph"
	"conectads/social/internal/profile"
)

var qualityLabels = [...]string{
	"Acquaintances",
	"Casual friends",
	"Good friends",
	"Close friends",
	"Best friends",
}

// QualityLabel names a friendship quality; out-of-range values yield ""
func QualityLabel(q int) string {
	if !profile.ValidQuality(q) {
		return ""
	}
	return qualityLabels[q-1]
}

// Friend is one entry of a profile's friend list
type Friend struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Quality int    `json:"quality"`
	Label   string `json:"label"`
}

// ProfileView is a profile with its friend list resolved to names
type ProfileView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Gender  string   `json:"gender"`
	Friends []Friend `json:"friends"`
}

// View resolves id's friend list. Friends missing from the registry are skipped.
func (n *Network) View(id string) (*ProfileView, bool) {
	p, ok := n.profiles.Find(id)
	if !ok {
		return nil, false
	}
	v := &ProfileView{ID: p.ID, Name: p.FullName, Age: p.Age, Gender: p.Gender, Friends: []Friend{}}
	p.EachFriend(func(friendID string, q int) bool {
		f, ok := n.profiles.Find(friendID)
		if !ok {
			return true
		}
		v.Friends = append(v.Friends, Friend{ID: f.ID, Name: f.FullName, Quality: q, Label: QualityLabel(q)})
		return true
	})
	return v, true
}

// ConnectionReport describes how two users relate
type ConnectionReport struct {
	A             string `json:"a"`
	B             string `json:"b"`
	NameA         string `json:"name_a"`
	NameB         string `json:"name_b"`
	Connected     bool   `json:"connected"`
	Direct        bool   `json:"direct"`
	Quality       int    `json:"quality,omitempty"`
	Label         string `json:"label,omitempty"`
	ComponentSize int    `json:"component_size,omitempty"`
}

// CheckConnection reports whether a and b are connected, directly or through
// their component. It fails with ErrProfileNotFound if either user is unknown.
func (n *Network) CheckConnection(a, b string) (*ConnectionReport, error) {
	pa, okA := n.profiles.Find(a)
	pb, okB := n.profiles.Find(b)
	if !okA || !okB {
		return nil, ErrProfileNotFound
	}
	r := &ConnectionReport{A: a, B: b, NameA: pa.FullName, NameB: pb.FullName}
	if !n.index.Connected(a, b) {
		return r, nil
	}
	r.Connected = true
	r.ComponentSize = n.index.ComponentSize(a)
	if pa.IsFriend(b) {
		r.Direct = true
		r.Quality = pa.Quality(b)
		r.Label = QualityLabel(r.Quality)
	}
	return r, nil
}

// Tree is the parent-link path from a user to the root of its component
type Tree struct {
	ID            string   `json:"id"`
	Root          string   `json:"root"`
	ComponentSize int      `json:"component_size"`
	Path          []string `json:"path"`
}

// Tree returns the connectivity tree path for id. The path is read before the
// root is resolved, so it shows the links as they were stored.
func (n *Network) Tree(id string) (*Tree, bool) {
	path, ok := n.index.PathToRoot(id)
	if !ok {
		return nil, false
	}
	return &Tree{
		ID:            id,
		Root:          path[len(path)-1],
		ComponentSize: n.index.ComponentSize(id),
		Path:          path,
	}, true
}

// Summary combines the friendship topology with registry statistics
type Summary struct {
	RegisteredUsers int                   `json:"registered_users"`
	Topology        *graph.TopologyReport `json:"topology"`
	Registry        profile.Stats         `json:"registry"`
}

// Summarize computes network-wide statistics; topN bounds the friendless and popular lists
func (n *Network) Summarize(topN int) *Summary {
	profiles := n.profiles.All()
	order := make([]string, len(profiles))
	for i, p := range profiles {
		order[i] = p.ID
	}
	return &Summary{
		RegisteredUsers: n.index.Len(),
		Topology:        graph.ComputeTopology(graph.NewSnapshot(profiles), n.index, order, topN),
		Registry:        n.profiles.Stats(),
	}
}
