package social

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"conectads/social/internal/graph"
	"conectads/social/internal/metrics"
	"conectads/social/internal/profile"
	"conectads/social/internal/suggest"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidQuality  = profile.ErrInvalidQuality
	ErrSelfFriendship  = errors.New("a user cannot befriend themselves")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// ProfileInput carries the fields needed to create a profile
type ProfileInput struct {
	ID       string `validate:"required"`
	FullName string
	Age      int `validate:"gte=0"`
	Gender   string
}

// Options configures a Network
type Options struct {
	InitialBuckets  int
	InitialCapacity int
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
}

// Network owns the profile registry and the connectivity index and keeps them
// consistent. It is not safe for concurrent use.
type Network struct {
	profiles *profile.Registry
	index    *graph.UnionFind
	engine   *suggest.Engine
	validate *validator.Validate
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// New creates an empty network
func New(opts Options) *Network {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	reg := profile.NewRegistry(opts.InitialBuckets)
	uf := graph.NewUnionFind(opts.InitialCapacity)
	return &Network{
		profiles: reg,
		index:    uf,
		engine:   suggest.NewEngine(reg, uf),
		validate: validator.New(),
		log:      log,
		metrics:  m,
	}
}

// Metrics returns the instruments updated by this network
func (n *Network) Metrics() *metrics.Metrics {
	return n.metrics
}

func (n *Network) reject(reason string, err error, attrs ...any) error {
	n.metrics.Rejections.WithLabelValues(reason).Inc()
	n.log.Warn("rejected", append([]any{"reason", reason, "error", err}, attrs...)...)
	return err
}

// CreateProfile registers a new user. It fails with ErrProfileExists if the
// identifier is taken and with ErrInvalidProfile if a field is out of range;
// nothing is written in either case.
func (n *Network) CreateProfile(in ProfileInput) error {
	if err := n.validate.Struct(in); err != nil {
		return n.reject("invalid_profile", fmt.Errorf("%w: %w", ErrInvalidProfile, err), "id", in.ID)
	}
	if _, ok := n.profiles.Find(in.ID); ok {
		return n.reject("profile_exists", fmt.Errorf("%w: %s", ErrProfileExists, in.ID), "id", in.ID)
	}

	p := profile.New(in.ID, in.FullName, in.Age, in.Gender)
	if n.profiles.Upsert(p) {
		n.metrics.RegistryGrowths.Inc()
		n.log.Info("registry grown", "buckets", n.profiles.BucketCount(), "size", n.profiles.Size())
	}

	growths := n.index.Growths()
	n.index.Register(in.ID)
	if n.index.Growths() != growths {
		n.metrics.IndexGrowths.Inc()
		n.log.Info("connectivity index grown", "capacity", n.index.Capacity())
	}

	n.metrics.ProfilesCreated.Inc()
	n.metrics.RegisteredUsers.Set(float64(n.index.Len()))
	n.metrics.Components.Set(float64(n.index.Count()))
	n.log.Debug("profile created", "id", in.ID, "name", in.FullName)
	return nil
}

// EstablishFriendship links a and b with the given quality on both sides and
// merges their components. Re-befriending an existing pair overwrites the quality.
// It fails with ErrInvalidQuality, ErrSelfFriendship (a == b) or ErrProfileNotFound,
// checked in that order, and writes nothing on failure.
func (n *Network) EstablishFriendship(a, b string, quality int) error {
	if !profile.ValidQuality(quality) {
		return n.reject("invalid_quality", fmt.Errorf("%w: got %d", ErrInvalidQuality, quality), "a", a, "b", b)
	}
	if a == b {
		return n.reject("self_friendship", fmt.Errorf("%w: %s", ErrSelfFriendship, a), "id", a)
	}
	pa, okA := n.profiles.Find(a)
	pb, okB := n.profiles.Find(b)
	if !okA || !okB {
		missing := a
		if okA {
			missing = b
		}
		return n.reject("missing_user", fmt.Errorf("%w: %s", ErrProfileNotFound, missing), "a", a, "b", b)
	}

	// quality is already validated, so neither call can fail
	_ = pa.AddFriend(b, quality)
	_ = pb.AddFriend(a, quality)

	merged, err := n.index.Connect(a, b)
	if err != nil {
		return fmt.Errorf("connecting %s and %s: %w", a, b, err)
	}
	if merged {
		n.log.Debug("components merged", "a", a, "b", b, "components", n.index.Count())
	}

	n.metrics.FriendshipsCreated.Inc()
	n.metrics.Components.Set(float64(n.index.Count()))
	n.log.Debug("friendship established", "a", a, "b", b, "quality", quality, "label", QualityLabel(quality))
	return nil
}

// Profile returns the profile registered under id
func (n *Network) Profile(id string) (*profile.Profile, bool) {
	return n.profiles.Find(id)
}

// Profiles returns every profile in registry order
func (n *Network) Profiles() []*profile.Profile {
	return n.profiles.All()
}

// Suggest returns the ranked friend-of-friend suggestions for id
func (n *Network) Suggest(id string, filter suggest.Filter) []suggest.Suggestion {
	out := n.engine.Suggest(id, filter)
	n.observeQuery(id, len(out))
	return out
}

// TopSuggestions returns at most limit unfiltered suggestions for id
func (n *Network) TopSuggestions(id string, limit int) []suggest.Suggestion {
	out := n.engine.Top(id, limit)
	n.observeQuery(id, len(out))
	return out
}

func (n *Network) observeQuery(id string, count int) {
	n.metrics.SuggestionQueries.Inc()
	n.metrics.SuggestionsReturned.Observe(float64(count))
	n.log.Debug("suggestions generated", "id", id, "count", count)
}

// AreConnected reports whether a and b are in the same component
func (n *Network) AreConnected(a, b string) bool {
	return n.index.Connected(a, b)
}

// ComponentSize returns the size of id's component, 0 if unknown
func (n *Network) ComponentSize(id string) int {
	return n.index.ComponentSize(id)
}

// ComponentCount returns the number of components
func (n *Network) ComponentCount() int {
	return n.index.Count()
}

// RegistryStats describes the profile hash table
func (n *Network) RegistryStats() profile.Stats {
	return n.profiles.Stats()
}

// AddProfile adapts CreateProfile to the loader interface
func (n *Network) AddProfile(id, name string, age int, gender string) error {
	return n.CreateProfile(ProfileInput{ID: id, FullName: name, Age: age, Gender: gender})
}

// AddFriendship adapts EstablishFriendship to the loader interface
func (n *Network) AddFriendship(a, b string, quality int) error {
	return n.EstablishFriendship(a, b, quality)
}
