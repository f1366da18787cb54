package profile

import (
	"errors"
	"fmt"

	"github.com/tidwall/btree"
)

// MinQuality and MaxQuality bound the weight of a friendship edge.
const (
	MinQuality = 1
	MaxQuality = 5
)

// ErrInvalidQuality is returned when a friendship quality is outside [MinQuality, MaxQuality].
var ErrInvalidQuality = errors.New("friendship quality must be between 1 and 5")

// Profile is a registered user. The friend map is ordered by friend identifier,
// so iteration over it is deterministic.
type Profile struct {
	ID       string
	FullName string
	Age      int
	Gender   string

	friends btree.Map[string, int]
}

// New creates a profile with an empty friend map
func New(id, fullName string, age int, gender string) *Profile {
	return &Profile{
		ID:       id,
		FullName: fullName,
		Age:      age,
		Gender:   gender,
	}
}

// ValidQuality reports whether q is an acceptable friendship quality.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// AddFriend records friendID with the given quality, replacing any previous quality.
// Only one side of the edge is written; keeping both sides equal is the caller's job.
func (p *Profile) AddFriend(friendID string, quality int) error {
	if !ValidQuality(quality) {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	p.friends.Set(friendID, quality)
	return nil
}

// Quality returns the quality of the edge to friendID, or 0 if they are not friends.
func (p *Profile) Quality(friendID string) int {
	q, _ := p.friends.Get(friendID)
	return q
}

// IsFriend reports whether friendID is in the friend map
func (p *Profile) IsFriend(friendID string) bool {
	_, ok := p.friends.Get(friendID)
	return ok
}

// FriendCount returns the number of direct friends
func (p *Profile) FriendCount() int {
	return p.friends.Len()
}

// EachFriend calls fn for every friend in ascending identifier order until fn returns false.
func (p *Profile) EachFriend(fn func(friendID string, quality int) bool) {
	p.friends.Scan(fn)
}

// FriendIDs returns the friend identifiers in ascending order.
func (p *Profile) FriendIDs() []string {
	ids := make([]string, 0, p.friends.Len())
	p.friends.Scan(func(id string, _ int) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Friends returns a copy of the friend map
func (p *Profile) Friends() map[string]int {
	out := make(map[string]int, p.friends.Len())
	p.friends.Scan(func(id string, q int) bool {
		out[id] = q
		return true
	})
	return out
}

func (p *Profile) String() string {
	return fmt.Sprintf("Profile[ID=%s, Name=%s, Age=%d, Gender=%s, Friends=%d]",
		p.ID, p.FullName, p.Age, p.Gender, p.friends.Len())
}
