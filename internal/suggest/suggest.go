package suggest

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"

	"conectads/social/internal/profile"
)

// Directory looks up profiles by identifier
type Directory interface {
	Find(id string) (*profile.Profile, bool)
}

// Connectivity answers reachability queries without mutating its state
type Connectivity interface {
	Connected(a, b string) bool
}

// Suggestion is a second-degree friend candidate. Priority is the quality of the
// edge between the querying user and the intermediate friend.
type Suggestion struct {
	Profile  *profile.Profile
	Priority int
	Via      string // display name of the intermediate friend
	ViaID    string
}

func (s Suggestion) String() string {
	return fmt.Sprintf("Suggestion: %s (ID: %s) - Priority: %d - Via: %s",
		s.Profile.FullName, s.Profile.ID, s.Priority, s.Via)
}

// Filter restricts candidates. A zero Filter matches everyone; MinAge and MaxAge
// values <= 0 mean no bound.
type Filter struct {
	Gender string
	MinAge int
	MaxAge int
}

// Matches reports whether p passes the filter
func (f Filter) Matches(p *profile.Profile) bool {
	if f.Gender != "" {
		fold := cases.Fold()
		if fold.String(p.Gender) != fold.String(f.Gender) {
			return false
		}
	}
	if f.MinAge > 0 && p.Age < f.MinAge {
		return false
	}
	if f.MaxAge > 0 && p.Age > f.MaxAge {
		return false
	}
	return true
}

// IsZero reports whether the filter has no constraints
func (f Filter) IsZero() bool {
	return f.Gender == "" && f.MinAge <= 0 && f.MaxAge <= 0
}

// Engine ranks friend-of-friend suggestions. It only reads from its collaborators.
type Engine struct {
	dir  Directory
	conn Connectivity
}

// NewEngine creates an engine over a profile directory and a connectivity index
func NewEngine(dir Directory, conn Connectivity) *Engine {
	return &Engine{dir: dir, conn: conn}
}

// Suggest returns every second-hop candidate for userID that passes the filter,
// ordered by priority descending and full name ascending. Direct friends and the
// user are never suggested. A candidate reachable through several friends keeps
// the priority of the first friend visited (friends are visited in identifier order).
// An unknown user yields an empty result.
func (e *Engine) Suggest(userID string, filter Filter) []Suggestion {
	user, ok := e.dir.Find(userID)
	if !ok {
		return []Suggestion{}
	}

	excluded := make(map[string]bool, user.FriendCount()+1)
	excluded[userID] = true
	user.EachFriend(func(friendID string, _ int) bool {
		excluded[friendID] = true
		return true
	})

	var out []Suggestion
	user.EachFriend(func(friendID string, quality int) bool {
		friend, ok := e.dir.Find(friendID)
		if !ok {
			return true
		}
		friend.EachFriend(func(candidateID string, _ int) bool {
			if excluded[candidateID] {
				return true
			}
			candidate, ok := e.dir.Find(candidateID)
			if !ok || !filter.Matches(candidate) {
				return true
			}
			if !e.conn.Connected(userID, candidateID) {
				return true
			}
			out = append(out, Suggestion{
				Profile:  candidate,
				Priority: quality,
				Via:      friend.FullName,
				ViaID:    friend.ID,
			})
			excluded[candidateID] = true
			return true
		})
		return true
	})

	Sort(out)
	if out == nil {
		out = []Suggestion{}
	}
	return out
}

// Top returns at most n suggestions for userID with no filter applied
func (e *Engine) Top(userID string, n int) []Suggestion {
	if n <= 0 {
		return []Suggestion{}
	}
	all := e.Suggest(userID, Filter{})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Sort orders suggestions by priority descending, then full name ascending
func Sort(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Priority != s[j].Priority {
			return s[i].Priority > s[j].Priority
		}
		return s[i].Profile.FullName < s[j].Profile.FullName
	})
}
