package graph

import (
	"sort"

	"conectads/social/internal/profile"
)

// NodeInfo is a lightweight user representation decoupled from the registry
type NodeInfo struct {
	ID          string
	Name        string
	Age         int
	Gender      string
	FriendCount int
}

// EdgeInfo is one undirected friendship. A is always the smaller identifier.
type EdgeInfo struct {
	A       string
	B       string
	Quality int
}

// Snapshot holds the friendship graph with precomputed adjacency lists
type Snapshot struct {
	Nodes map[string]*NodeInfo
	Edges []EdgeInfo
	Adj   map[string][]string // undirected, sorted
}

// NewSnapshot builds a Snapshot from registry profiles. Friend entries pointing
// at identifiers that are not in profiles are dropped.
func NewSnapshot(profiles []*profile.Profile) *Snapshot {
	nodeMap := make(map[string]*NodeInfo, len(profiles))
	adj := make(map[string][]string, len(profiles))
	for _, p := range profiles {
		nodeMap[p.ID] = &NodeInfo{
			ID:          p.ID,
			Name:        p.FullName,
			Age:         p.Age,
			Gender:      p.Gender,
			FriendCount: p.FriendCount(),
		}
		adj[p.ID] = nil // ensure entry exists
	}

	var edges []EdgeInfo
	for _, p := range profiles {
		p.EachFriend(func(friendID string, quality int) bool {
			if _, ok := nodeMap[friendID]; !ok {
				return true
			}
			adj[p.ID] = append(adj[p.ID], friendID)
			// each friendship is stored on both sides; keep one
			if p.ID <= friendID {
				edges = append(edges, EdgeInfo{A: p.ID, B: friendID, Quality: quality})
			}
			return true
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})

	return &Snapshot{Nodes: nodeMap, Edges: edges, Adj: adj}
}

// NodeIDs returns a sorted list of all user IDs (for deterministic output)
func (s *Snapshot) NodeIDs() []string {
	ids := make([]string, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Degree returns the number of friends of id present in the snapshot
func (s *Snapshot) Degree(id string) int {
	return len(s.Adj[id])
}
