package graph

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"conectads/social/internal/profile"
)

func newIndex(t *testing.T, ids ...string) *UnionFind {
	t.Helper()
	uf := NewUnionFind(4)
	for _, id := range ids {
		uf.Register(id)
	}
	return uf
}

func mustUnion(t *testing.T, uf *UnionFind, a, b string) bool {
	t.Helper()
	ia, _ := uf.Index(a)
	ib, _ := uf.Index(b)
	merged, err := uf.Union(ia, ib)
	if err != nil {
		t.Fatalf("Union(%s, %s): %v", a, b, err)
	}
	return merged
}

// quickProfiles builds symmetric profiles from an edge list
func quickProfiles(ids []string, edges [][2]string) []*profile.Profile {
	byID := make(map[string]*profile.Profile, len(ids))
	var out []*profile.Profile
	for _, id := range ids {
		p := profile.New(id, "Name "+id, 30, "F")
		byID[id] = p
		out = append(out, p)
	}
	for _, e := range edges {
		_ = byID[e[0]].AddFriend(e[1], 3)
		_ = byID[e[1]].AddFriend(e[0], 3)
	}
	return out
}

// --- UnionFind Tests ---

func TestRegister_Idempotent(t *testing.T) {
	uf := NewUnionFind(4)
	first := uf.Register("ana")
	second := uf.Register("ana")
	if first != second {
		t.Errorf("Register should be idempotent, got %d then %d", first, second)
	}
	if uf.Len() != 1 || uf.Count() != 1 {
		t.Errorf("expected 1 user in 1 component, got len=%d count=%d", uf.Len(), uf.Count())
	}
}

func TestRegister_GrowsByDoubling(t *testing.T) {
	uf := NewUnionFind(2)
	for i := 0; i < 5; i++ {
		if got := uf.Register(fmt.Sprintf("u%d", i)); got != i {
			t.Fatalf("expected index %d, got %d", i, got)
		}
	}
	if uf.Capacity() != 8 {
		t.Errorf("expected capacity 8, got %d", uf.Capacity())
	}
	if uf.Growths() != 2 {
		t.Errorf("expected 2 growths, got %d", uf.Growths())
	}
	if uf.Count() != 5 {
		t.Errorf("new users should be singletons, got %d components", uf.Count())
	}
	for i := 0; i < 5; i++ {
		root, err := uf.Find(i)
		if err != nil || root != i {
			t.Errorf("Find(%d) = %d, %v; want itself", i, root, err)
		}
	}
}

func TestGrowth_KeepsUnions(t *testing.T) {
	uf := NewUnionFind(2)
	uf.Register("a")
	uf.Register("b")
	mustUnion(t, uf, "a", "b")
	uf.Register("c") // triggers growth
	if !uf.Connected("a", "b") {
		t.Error("growth lost an existing union")
	}
	if uf.ComponentSize("b") != 2 {
		t.Errorf("expected component size 2, got %d", uf.ComponentSize("b"))
	}
	if uf.Connected("a", "c") {
		t.Error("new slot should start disconnected")
	}
}

func TestFind_OutOfRange(t *testing.T) {
	uf := newIndex(t, "a", "b", "c")
	for _, i := range []int{-1, 3, 4, 100} {
		if _, err := uf.Find(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Find(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if _, err := uf.Union(0, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Union(0, 3): expected ErrIndexOutOfRange, got %v", err)
	}
	if uf.Count() != 3 {
		t.Errorf("failed union must not change count, got %d", uf.Count())
	}
	if _, err := uf.Name(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Name(7): expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestUnion_DecrementsCount(t *testing.T) {
	uf := newIndex(t, "a", "b", "c", "d")
	if !mustUnion(t, uf, "a", "b") {
		t.Error("first union should merge")
	}
	if uf.Count() != 3 {
		t.Errorf("expected 3 components, got %d", uf.Count())
	}
	if mustUnion(t, uf, "b", "a") {
		t.Error("union of connected users should not merge")
	}
	if uf.Count() != 3 {
		t.Errorf("count should be unchanged, got %d", uf.Count())
	}
	mustUnion(t, uf, "c", "d")
	mustUnion(t, uf, "a", "d")
	if uf.Count() != 1 {
		t.Errorf("expected 1 component, got %d", uf.Count())
	}
	if uf.ComponentSize("c") != 4 {
		t.Errorf("expected size 4, got %d", uf.ComponentSize("c"))
	}
}

func TestUnion_AttachesRootToNode(t *testing.T) {
	uf := newIndex(t, "x", "y", "z")
	mustUnion(t, uf, "y", "z") // y -> z
	mustUnion(t, uf, "x", "y") // x -> y, not x -> z

	path, ok := uf.PathToRoot("x")
	if !ok {
		t.Fatal("x should be registered")
	}
	if want := []string{"x", "y", "z"}; !reflect.DeepEqual(path, want) {
		t.Errorf("PathToRoot(x) = %v, want %v", path, want)
	}
	if uf.ComponentSize("x") != 3 {
		t.Errorf("expected size 3, got %d", uf.ComponentSize("x"))
	}
}

func TestUnion_ChainThenReverseIsSkipped(t *testing.T) {
	uf := newIndex(t, "A", "B", "C")
	mustUnion(t, uf, "A", "B")
	mustUnion(t, uf, "B", "C")
	if path, _ := uf.PathToRoot("A"); !reflect.DeepEqual(path, []string{"A", "B", "C"}) {
		t.Fatalf("expected chain A->B->C, got %v", path)
	}
	before := uf.Count()
	if mustUnion(t, uf, "C", "A") {
		t.Error("union inside one component must be skipped")
	}
	if uf.Count() != before {
		t.Errorf("count changed from %d to %d", before, uf.Count())
	}
	if uf.ComponentSize("A") != 3 {
		t.Errorf("size changed to %d", uf.ComponentSize("A"))
	}
}

func TestFind_CompressesPath(t *testing.T) {
	uf := newIndex(t, "A", "B", "C", "D")
	mustUnion(t, uf, "A", "B")
	mustUnion(t, uf, "B", "C")
	mustUnion(t, uf, "C", "D")
	// PathToRoot does not compress
	if path, _ := uf.PathToRoot("A"); len(path) != 4 {
		t.Fatalf("expected 4-long path before Find, got %v", path)
	}
	ia, _ := uf.Index("A")
	if _, err := uf.Find(ia); err != nil {
		t.Fatal(err)
	}
	if path, _ := uf.PathToRoot("A"); !reflect.DeepEqual(path, []string{"A", "D"}) {
		t.Errorf("expected A to point at the root after Find, got %v", path)
	}
}

func TestConnected(t *testing.T) {
	uf := newIndex(t, "a", "b", "c", "d")
	mustUnion(t, uf, "a", "b")
	mustUnion(t, uf, "b", "c")

	tests := []struct {
		x, y string
		want bool
	}{
		{"a", "a", true},
		{"a", "b", true},
		{"a", "c", true}, // transitive
		{"c", "a", true},
		{"a", "d", false},
		{"a", "ghost", false},
		{"ghost", "ghost", false},
	}
	for _, tt := range tests {
		if got := uf.Connected(tt.x, tt.y); got != tt.want {
			t.Errorf("Connected(%s, %s) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if uf.ComponentSize("ghost") != 0 {
		t.Error("unregistered user should have component size 0")
	}
}

func TestConnect_RegistersAndMerges(t *testing.T) {
	uf := NewUnionFind(0)
	if uf.Capacity() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, uf.Capacity())
	}
	merged, err := uf.Connect("a", "b")
	if err != nil || !merged {
		t.Fatalf("Connect(a, b) = %v, %v", merged, err)
	}
	merged, err = uf.Connect("b", "a")
	if err != nil || merged {
		t.Errorf("second Connect should be a no-op, got %v, %v", merged, err)
	}
	if uf.Count() != 1 || uf.Len() != 2 {
		t.Errorf("expected 2 users in 1 component, got len=%d count=%d", uf.Len(), uf.Count())
	}
}

func TestComponents_LargestFirst(t *testing.T) {
	uf := newIndex(t, "a", "b", "c", "d", "e", "f")
	mustUnion(t, uf, "d", "e")
	mustUnion(t, uf, "e", "f")
	mustUnion(t, uf, "a", "b")

	comps := uf.Components()
	var sizes []int
	for _, c := range comps {
		sizes = append(sizes, len(c))
	}
	if want := []int{3, 2, 1}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("component sizes = %v, want %v", sizes, want)
	}
	if len(comps) != uf.Count() {
		t.Errorf("Components() returned %d groups but Count() = %d", len(comps), uf.Count())
	}
}

// --- Snapshot / Topology Tests ---

func TestSnapshot_DedupesEdges(t *testing.T) {
	snap := NewSnapshot(quickProfiles(
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"c", "b"}},
	))
	if len(snap.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d: %v", len(snap.Edges), snap.Edges)
	}
	if snap.Edges[0].A != "a" || snap.Edges[1].A != "b" || snap.Edges[1].B != "c" {
		t.Errorf("edges not normalized: %v", snap.Edges)
	}
	if snap.Degree("b") != 2 {
		t.Errorf("expected degree 2 for b, got %d", snap.Degree("b"))
	}
}

func TestTopology_Empty(t *testing.T) {
	r := ComputeTopology(NewSnapshot(nil), NewUnionFind(4), nil, 10)
	if r.TotalUsers != 0 || r.TotalFriendships != 0 || r.NumComponents != 0 {
		t.Errorf("empty graph should have all zeros, got %+v", r)
	}
	if len(r.DegreeHistogram) != 7 {
		t.Errorf("expected 7 histogram buckets, got %d", len(r.DegreeHistogram))
	}
}

func TestTopology_Summary(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	edges := [][2]string{{"a", "b"}, {"a", "c"}, {"a", "d"}}
	profiles := quickProfiles(ids, edges)

	uf := NewUnionFind(8)
	for _, id := range ids {
		uf.Register(id)
	}
	for _, e := range edges {
		if _, err := uf.Connect(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}

	r := ComputeTopology(NewSnapshot(profiles), uf, nil, 10)
	if r.TotalUsers != 5 || r.TotalFriendships != 3 {
		t.Errorf("expected 5 users and 3 friendships, got %d and %d", r.TotalUsers, r.TotalFriendships)
	}
	if r.NumComponents != 2 {
		t.Errorf("expected 2 components, got %d", r.NumComponents)
	}
	if !reflect.DeepEqual(r.ComponentSizes, []int{4, 1}) {
		t.Errorf("component sizes = %v", r.ComponentSizes)
	}
	if r.LargestComponent != 4 || r.SmallestComponent != 1 {
		t.Errorf("largest/smallest = %d/%d", r.LargestComponent, r.SmallestComponent)
	}
	if r.AverageFriends != 6.0/5.0 {
		t.Errorf("expected average 1.2, got %f", r.AverageFriends)
	}
	if r.MaxFriends != 3 || r.MostPopular != "Name a" {
		t.Errorf("most popular = %q with %d", r.MostPopular, r.MaxFriends)
	}
	if r.FriendlessCount != 1 || r.FriendlessIDs[0] != "e" {
		t.Errorf("friendless = %d %v", r.FriendlessCount, r.FriendlessIDs)
	}
	if r.Popular[0].ID != "a" {
		t.Errorf("expected a to top the popular list, got %v", r.Popular)
	}
	// histogram: e=0, b/c/d=1, a=3
	if r.DegreeHistogram[0].Count != 1 || r.DegreeHistogram[1].Count != 3 || r.DegreeHistogram[2].Count != 1 {
		t.Errorf("unexpected histogram %v", r.DegreeHistogram)
	}
}

func TestTopology_MostPopularFollowsOrder(t *testing.T) {
	profiles := quickProfiles([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"c", "d"}})
	uf := NewUnionFind(4)
	r := ComputeTopology(NewSnapshot(profiles), uf, []string{"d", "c", "b", "a"}, 10)
	if r.MostPopular != "Name d" {
		t.Errorf("first user with the maximum should win, got %q", r.MostPopular)
	}
}

func TestDegreeBucket(t *testing.T) {
	tests := []struct{ degree, bucket int }{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {7, 3}, {8, 4}, {15, 4}, {16, 5}, {31, 5}, {32, 6}, {500, 6},
	}
	for _, tt := range tests {
		if got := degreeBucket(tt.degree); got != tt.bucket {
			t.Errorf("degreeBucket(%d) = %d, want %d", tt.degree, got, tt.bucket)
		}
	}
}
