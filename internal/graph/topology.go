package graph

import "sort"

// PopularUser is a user with many direct friends
type PopularUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FriendCount int    `json:"friend_count"`
}

// DegreeBucket is one bucket in the friend-count histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopologyReport summarizes the friendship graph
type TopologyReport struct {
	TotalUsers        int            `json:"total_users"`
	TotalFriendships  int            `json:"total_friendships"`
	NumComponents     int            `json:"num_components"`
	ComponentSizes    []int          `json:"component_sizes"`
	LargestComponent  int            `json:"largest_component"`
	SmallestComponent int            `json:"smallest_component"`
	AverageFriends    float64        `json:"average_friends"`
	MaxFriends        int            `json:"max_friends"`
	MostPopular       string         `json:"most_popular"`
	FriendlessCount   int            `json:"friendless_count"`
	FriendlessIDs     []string       `json:"friendless_ids"`
	DegreeHistogram   []DegreeBucket `json:"degree_histogram"`
	Popular           []PopularUser  `json:"popular"`
}

// ComputeTopology analyzes the snapshot: components (taken from uf), friend
// counts, friendless users and the most connected users. order lists user IDs
// in the order used to pick MostPopular (the first user holding the maximum wins);
// nil means sorted by ID.
func ComputeTopology(snap *Snapshot, uf *UnionFind, order []string, topN int) *TopologyReport {
	totalUsers := len(snap.Nodes)
	if totalUsers == 0 {
		return &TopologyReport{
			NumComponents:   uf.Count(),
			DegreeHistogram: defaultHistogram(),
		}
	}

	components := uf.Components()
	sizes := make([]int, len(components))
	for i, c := range components {
		sizes[i] = len(c)
	}
	largest, smallest := 0, 0
	if len(sizes) > 0 {
		largest, smallest = sizes[0], sizes[len(sizes)-1]
	}

	nodeIDs := snap.NodeIDs()
	if order == nil {
		order = nodeIDs
	}

	totalFriends := 0
	maxFriends := 0
	mostPopular := ""
	for _, id := range order {
		n, ok := snap.Nodes[id]
		if !ok {
			continue
		}
		totalFriends += n.FriendCount
		if n.FriendCount > maxFriends {
			maxFriends = n.FriendCount
			mostPopular = n.Name
		}
	}

	// Friendless: degree == 0
	var friendless []string
	for _, id := range nodeIDs {
		if snap.Degree(id) == 0 {
			friendless = append(friendless, id)
		}
	}
	friendlessCount := len(friendless)
	if len(friendless) > topN {
		friendless = friendless[:topN]
	}

	// Degree histogram (log-scale buckets)
	buckets := [7]int{}
	for _, id := range nodeIDs {
		buckets[degreeBucket(snap.Degree(id))]++
	}
	histogram := defaultHistogram()
	for i := range histogram {
		histogram[i].Count = buckets[i]
	}

	var popular []PopularUser
	for _, id := range nodeIDs {
		if d := snap.Degree(id); d > 0 {
			popular = append(popular, PopularUser{
				ID:          id,
				Name:        snap.Nodes[id].Name,
				FriendCount: d,
			})
		}
	}
	sort.SliceStable(popular, func(i, j int) bool { return popular[i].FriendCount > popular[j].FriendCount })
	if len(popular) > topN {
		popular = popular[:topN]
	}

	return &TopologyReport{
		TotalUsers:        totalUsers,
		TotalFriendships:  len(snap.Edges),
		NumComponents:     uf.Count(),
		ComponentSizes:    sizes,
		LargestComponent:  largest,
		SmallestComponent: smallest,
		AverageFriends:    float64(totalFriends) / float64(totalUsers),
		MaxFriends:        maxFriends,
		MostPopular:       mostPopular,
		FriendlessCount:   friendlessCount,
		FriendlessIDs:     friendless,
		DegreeHistogram:   histogram,
		Popular:           popular,
	}
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	case degree <= 31:
		return 5
	default:
		return 6
	}
}
