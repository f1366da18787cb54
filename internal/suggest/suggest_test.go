package suggest

import (
	"testing"

	"conectads/social/internal/graph"
	"conectads/social/internal/profile"
)

type fixture struct {
	reg *profile.Registry
	uf  *graph.UnionFind
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{reg: profile.NewRegistry(4), uf: graph.NewUnionFind(4)}
}

func (f *fixture) add(t *testing.T, id, name string, age int, gender string) {
	t.Helper()
	f.reg.Upsert(profile.New(id, name, age, gender))
	f.uf.Register(id)
}

func (f *fixture) befriend(t *testing.T, a, b string, q int) {
	t.Helper()
	pa, _ := f.reg.Find(a)
	pb, _ := f.reg.Find(b)
	if err := pa.AddFriend(b, q); err != nil {
		t.Fatal(err)
	}
	if err := pb.AddFriend(a, q); err != nil {
		t.Fatal(err)
	}
	if _, err := f.uf.Connect(a, b); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) engine() *Engine {
	return NewEngine(f.reg, f.uf)
}

// Ana -4- Bob -2- Cid
func baseScenario(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.add(t, "u1", "Ana", 30, "F")
	f.add(t, "u2", "Bob", 25, "M")
	f.add(t, "u3", "Cid", 28, "M")
	f.befriend(t, "u1", "u2", 4)
	f.befriend(t, "u2", "u3", 2)
	return f
}

func ids(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Profile.ID
	}
	return out
}

func TestSuggest_PriorityFromFirstHop(t *testing.T) {
	f := baseScenario(t)
	got := f.engine().Suggest("u1", Filter{})
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", ids(got))
	}
	s := got[0]
	if s.Profile.ID != "u3" || s.Priority != 4 || s.Via != "Bob" || s.ViaID != "u2" {
		t.Errorf("unexpected suggestion %s", s)
	}
}

func TestSuggest_TiesOrderedByName(t *testing.T) {
	f := baseScenario(t)
	f.add(t, "u4", "Dee", 40, "F")
	f.befriend(t, "u2", "u4", 5)

	got := f.engine().Suggest("u1", Filter{})
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", ids(got))
	}
	if got[0].Profile.FullName != "Cid" || got[1].Profile.FullName != "Dee" {
		t.Errorf("expected Cid before Dee, got %v", ids(got))
	}
	for _, s := range got {
		if s.Priority != 4 {
			t.Errorf("%s: expected priority 4, got %d", s.Profile.ID, s.Priority)
		}
	}
}

func TestSuggest_Filters(t *testing.T) {
	f := baseScenario(t)
	e := f.engine()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"gender and min age", Filter{Gender: "M", MinAge: 26, MaxAge: -1}, 1},
		{"lowercase gender", Filter{Gender: "m"}, 1},
		{"min age too high", Filter{Gender: "M", MinAge: 29, MaxAge: -1}, 0},
		{"wrong gender", Filter{Gender: "F"}, 0},
		{"max age below", Filter{MaxAge: 27}, 0},
		{"max age inclusive", Filter{MaxAge: 28}, 1},
		{"min age inclusive", Filter{MinAge: 28}, 1},
		{"sentinels", Filter{MinAge: -1, MaxAge: 0}, 1},
	}
	for _, tt := range tests {
		got := e.Suggest("u1", tt.filter)
		if len(got) != tt.want {
			t.Errorf("%s: expected %d suggestions, got %v", tt.name, tt.want, ids(got))
		}
		for _, s := range got {
			if !tt.filter.Matches(s.Profile) {
				t.Errorf("%s: %s does not satisfy the filter", tt.name, s.Profile.ID)
			}
		}
	}
}

func TestSuggest_ExcludesSelfAndFriends(t *testing.T) {
	// triangle u1-u2-u3 plus u4 hanging off u3
	f := newFixture(t)
	f.add(t, "u1", "Ana", 30, "F")
	f.add(t, "u2", "Bob", 25, "M")
	f.add(t, "u3", "Cid", 28, "M")
	f.add(t, "u4", "Dee", 40, "F")
	f.befriend(t, "u1", "u2", 3)
	f.befriend(t, "u1", "u3", 1)
	f.befriend(t, "u2", "u3", 5)
	f.befriend(t, "u3", "u4", 2)

	got := f.engine().Suggest("u1", Filter{})
	for _, s := range got {
		if s.Profile.ID == "u1" || s.Profile.ID == "u2" || s.Profile.ID == "u3" {
			t.Errorf("suggested excluded user %s", s.Profile.ID)
		}
	}
	if len(got) != 1 || got[0].Profile.ID != "u4" || got[0].Priority != 1 {
		t.Errorf("expected only u4 via Cid at priority 1, got %v", got)
	}
}

func TestSuggest_FirstWins(t *testing.T) {
	// u5 is reachable through u2 (quality 1) and u3 (quality 5); u2 is visited first
	f := newFixture(t)
	f.add(t, "u1", "Ana", 30, "F")
	f.add(t, "u2", "Bob", 25, "M")
	f.add(t, "u3", "Cid", 28, "M")
	f.add(t, "u5", "Eve", 22, "F")
	f.befriend(t, "u1", "u2", 1)
	f.befriend(t, "u1", "u3", 5)
	f.befriend(t, "u2", "u5", 3)
	f.befriend(t, "u3", "u5", 3)

	got := f.engine().Suggest("u1", Filter{})
	if len(got) != 1 {
		t.Fatalf("candidate must be suggested once, got %v", ids(got))
	}
	if got[0].Priority != 1 || got[0].Via != "Bob" {
		t.Errorf("expected first path (Bob, 1) to win, got %s", got[0])
	}
}

func TestSuggest_OrderingInvariant(t *testing.T) {
	f := newFixture(t)
	f.add(t, "me", "Me", 30, "F")
	names := []string{"Zed", "Amy", "Kim", "Lou", "Bea", "Ray"}
	for i, n := range names {
		f.add(t, "f"+n, "Friend "+n, 30, "F")
		f.add(t, "c"+n, n, 30, "F")
		f.befriend(t, "me", "f"+n, i%3+1)
		f.befriend(t, "f"+n, "c"+n, 5)
	}

	got := f.engine().Suggest("me", Filter{})
	if len(got) != len(names) {
		t.Fatalf("expected %d suggestions, got %d", len(names), len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Priority < cur.Priority {
			t.Errorf("priority increased at %d: %d -> %d", i, prev.Priority, cur.Priority)
		}
		if prev.Priority == cur.Priority && prev.Profile.FullName > cur.Profile.FullName {
			t.Errorf("names out of order at %d: %s > %s", i, prev.Profile.FullName, cur.Profile.FullName)
		}
	}
}

type disconnected struct{}

func (disconnected) Connected(string, string) bool { return false }

func TestSuggest_RequiresConnectivity(t *testing.T) {
	f := baseScenario(t)
	got := NewEngine(f.reg, disconnected{}).Suggest("u1", Filter{})
	if len(got) != 0 {
		t.Errorf("disconnected candidates must be skipped, got %v", ids(got))
	}
}

func TestSuggest_UnknownUser(t *testing.T) {
	f := baseScenario(t)
	got := f.engine().Suggest("nobody", Filter{})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

func TestSuggest_DoesNotMutate(t *testing.T) {
	f := baseScenario(t)
	countBefore := f.uf.Count()
	pathBefore, _ := f.uf.PathToRoot("u1")

	e := f.engine()
	first := e.Suggest("u1", Filter{})
	second := e.Suggest("u1", Filter{})

	if len(first) != len(second) || first[0].Profile.ID != second[0].Profile.ID {
		t.Error("repeated queries should return the same result")
	}
	if f.uf.Count() != countBefore {
		t.Error("component count changed")
	}
	pathAfter, _ := f.uf.PathToRoot("u1")
	if len(pathAfter) != len(pathBefore) {
		t.Errorf("index tree changed: %v -> %v", pathBefore, pathAfter)
	}
}

func TestTop(t *testing.T) {
	f := baseScenario(t)
	f.add(t, "u4", "Dee", 40, "F")
	f.befriend(t, "u2", "u4", 5)
	e := f.engine()

	if got := e.Top("u1", 1); len(got) != 1 || got[0].Profile.FullName != "Cid" {
		t.Errorf("Top(1) = %v", ids(got))
	}
	if got := e.Top("u1", 10); len(got) != 2 {
		t.Errorf("Top(10) = %v", ids(got))
	}
	for _, n := range []int{0, -3} {
		if got := e.Top("u1", n); got == nil || len(got) != 0 {
			t.Errorf("Top(%d) should be empty, got %v", n, got)
		}
	}
}

func TestFilter_IsZero(t *testing.T) {
	if !(Filter{}).IsZero() || !(Filter{MinAge: -1, MaxAge: -1}).IsZero() {
		t.Error("empty filter should be zero")
	}
	if (Filter{Gender: "F"}).IsZero() || (Filter{MinAge: 3}).IsZero() {
		t.Error("constrained filter should not be zero")
	}
}
