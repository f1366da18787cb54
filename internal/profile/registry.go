package profile

import "github.com/cespare/xxhash/v2"

const (
	// DefaultBuckets is the initial bucket count when none is given
	DefaultBuckets = 16
	// LoadFactorThreshold triggers growth once size/buckets reaches it
	LoadFactorThreshold = 0.75
)

type entry struct {
	key   string
	value *Profile
}

// Registry is a separate-chaining hash table of profiles keyed by identifier.
// It doubles its bucket array whenever the load factor reaches LoadFactorThreshold.
type Registry struct {
	buckets [][]entry
	size    int
}

// Stats describes the shape of the table
type Stats struct {
	BucketCount     int     `json:"bucket_count"`
	Size            int     `json:"size"`
	LoadFactor      float64 `json:"load_factor"`
	NonEmptyBuckets int     `json:"non_empty_buckets"`
	MaxChainLength  int     `json:"max_chain_length"`
}

// NewRegistry creates a registry with the given initial bucket count (DefaultBuckets if <= 0).
func NewRegistry(initialBuckets int) *Registry {
	if initialBuckets <= 0 {
		initialBuckets = DefaultBuckets
	}
	return &Registry{buckets: make([][]entry, initialBuckets)}
}

func bucketIndex(key string, n int) int {
	return int(xxhash.Sum64String(key) % uint64(n))
}

// Upsert inserts p, or replaces the profile already stored under p.ID.
// Returns true if the registry grew as a result.
func (r *Registry) Upsert(p *Profile) bool {
	idx := bucketIndex(p.ID, len(r.buckets))
	chain := r.buckets[idx]
	for i := range chain {
		if chain[i].key == p.ID {
			chain[i].value = p
			return false
		}
	}

	r.buckets[idx] = append(chain, entry{key: p.ID, value: p})
	r.size++

	if float64(r.size)/float64(len(r.buckets)) >= LoadFactorThreshold {
		r.grow()
		return true
	}
	return false
}

// grow doubles the bucket array and rehashes every entry into it
func (r *Registry) grow() {
	old := r.buckets
	r.buckets = make([][]entry, len(old)*2)
	for _, chain := range old {
		for _, e := range chain {
			idx := bucketIndex(e.key, len(r.buckets))
			r.buckets[idx] = append(r.buckets[idx], e)
		}
	}
}

// Find returns the profile stored under id
func (r *Registry) Find(id string) (*Profile, bool) {
	for _, e := range r.buckets[bucketIndex(id, len(r.buckets))] {
		if e.key == id {
			return e.value, true
		}
	}
	return nil, false
}

// Remove deletes the profile stored under id. It returns false if there was none.
func (r *Registry) Remove(id string) bool {
	idx := bucketIndex(id, len(r.buckets))
	chain := r.buckets[idx]
	for i, e := range chain {
		if e.key == id {
			r.buckets[idx] = append(chain[:i], chain[i+1:]...)
			r.size--
			return true
		}
	}
	return false
}

// Size returns the number of stored profiles
func (r *Registry) Size() int {
	return r.size
}

// BucketCount returns the current number of buckets
func (r *Registry) BucketCount() int {
	return len(r.buckets)
}

// All returns a snapshot of every profile in bucket order. The order changes when the table grows.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, r.size)
	for _, chain := range r.buckets {
		for _, e := range chain {
			out = append(out, e.value)
		}
	}
	return out
}

// Stats reports bucket usage
func (r *Registry) Stats() Stats {
	s := Stats{
		BucketCount: len(r.buckets),
		Size:        r.size,
		LoadFactor:  float64(r.size) / float64(len(r.buckets)),
	}
	for _, chain := range r.buckets {
		if len(chain) == 0 {
			continue
		}
		s.NonEmptyBuckets++
		if len(chain) > s.MaxChainLength {
			s.MaxChainLength = len(chain)
		}
	}
	return s
}
