package graph

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultCapacity is the initial size of the index space
const DefaultCapacity = 100

// ErrIndexOutOfRange is returned when an index that was never registered is queried.
var ErrIndexOutOfRange = errors.New("index out of range")

// UnionFind is a weighted union-find over a dense integer index space with
// path compression. User identifiers are mapped to indices on registration.
//
// Union attaches the root of one component directly under the other node
// (not under its root), guarded by an upward walk that refuses to create a
// cycle. Tree shapes therefore match the parent-link paths reported by PathToRoot.
type UnionFind struct {
	ids     map[string]int
	names   []string
	parent  []int
	size    []int
	count   int
	next    int
	growths int
}

// NewUnionFind creates an index with room for capacity users before it has to grow
func NewUnionFind(capacity int) *UnionFind {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	uf := &UnionFind{
		ids:    make(map[string]int, capacity),
		names:  make([]string, capacity),
		parent: make([]int, capacity),
		size:   make([]int, capacity),
	}
	for i := 0; i < capacity; i++ {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Register returns the index of id, allocating the next free index on first sight.
func (uf *UnionFind) Register(id string) int {
	if idx, ok := uf.ids[id]; ok {
		return idx
	}
	if uf.next >= len(uf.parent) {
		uf.expand()
	}
	idx := uf.next
	uf.ids[id] = idx
	uf.names[idx] = id
	uf.next++
	uf.count++
	return idx
}

// expand doubles the backing arrays; new slots start as singleton components
func (uf *UnionFind) expand() {
	oldCap := len(uf.parent)
	newCap := oldCap * 2

	parent := make([]int, newCap)
	size := make([]int, newCap)
	names := make([]string, newCap)
	copy(parent, uf.parent)
	copy(size, uf.size)
	copy(names, uf.names)
	for i := oldCap; i < newCap; i++ {
		parent[i] = i
		size[i] = 1
	}

	uf.parent = parent
	uf.size = size
	uf.names = names
	uf.growths++
}

// Index returns the index registered for id
func (uf *UnionFind) Index(id string) (int, bool) {
	idx, ok := uf.ids[id]
	return idx, ok
}

// Name returns the identifier registered at index i
func (uf *UnionFind) Name(i int) (string, error) {
	if err := uf.validate(i); err != nil {
		return "", err
	}
	return uf.names[i], nil
}

func (uf *UnionFind) validate(i int) error {
	if i < 0 || i >= uf.next {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, uf.next)
	}
	return nil
}

// Find returns the root of the component containing i, with path compression
func (uf *UnionFind) Find(i int) (int, error) {
	if err := uf.validate(i); err != nil {
		return 0, err
	}
	return uf.find(i), nil
}

func (uf *UnionFind) find(i int) int {
	root := i
	for root != uf.parent[root] {
		root = uf.parent[root]
	}
	for i != root {
		next := uf.parent[i]
		uf.parent[i] = root
		i = next
	}
	return root
}

// Union merges the components of p and q. It returns true if two components
// became one, false if they were already connected or the merge would form a cycle.
func (uf *UnionFind) Union(p, q int) (bool, error) {
	if err := uf.validate(p); err != nil {
		return false, err
	}
	if err := uf.validate(q); err != nil {
		return false, err
	}

	rootP := uf.find(p)
	if uf.find(rootP) == uf.find(q) {
		return false, nil
	}

	// rootP must not be an ancestor of q. Once the roots differ this cannot
	// fire; it stays so a change to the check above cannot create a cycle.
	for cur := q; cur != uf.parent[cur]; cur = uf.parent[cur] {
		if cur == rootP {
			return false, nil
		}
	}

	uf.parent[rootP] = q
	rootQ := uf.find(q)
	uf.size[rootQ] += uf.size[rootP]
	uf.count--
	return true, nil
}

// Connect registers both identifiers and unions them. Returns true if they were
// in different components before the call.
func (uf *UnionFind) Connect(a, b string) (bool, error) {
	ia := uf.Register(a)
	ib := uf.Register(b)
	if uf.Connected(a, b) {
		return false, nil
	}
	return uf.Union(ia, ib)
}

// Connected reports whether a and b are in the same component. Unregistered
// identifiers are never connected. It does not compress paths, so read-only
// callers can use it without touching the index.
func (uf *UnionFind) Connected(a, b string) bool {
	ia, okA := uf.ids[a]
	ib, okB := uf.ids[b]
	if !okA || !okB {
		return false
	}
	return uf.root(ia) == uf.root(ib)
}

func (uf *UnionFind) root(i int) int {
	for i != uf.parent[i] {
		i = uf.parent[i]
	}
	return i
}

// ComponentSize returns the size of the component containing id, 0 if unregistered
func (uf *UnionFind) ComponentSize(id string) int {
	idx, ok := uf.ids[id]
	if !ok {
		return 0
	}
	return uf.size[uf.find(idx)]
}

// Count returns the number of disjoint components
func (uf *UnionFind) Count() int {
	return uf.count
}

// Len returns the number of registered identifiers
func (uf *UnionFind) Len() int {
	return uf.next
}

// Capacity returns the current size of the backing arrays
func (uf *UnionFind) Capacity() int {
	return len(uf.parent)
}

// Growths returns how many times the backing arrays have doubled
func (uf *UnionFind) Growths() int {
	return uf.growths
}

// PathToRoot follows parent links from id up to its component root without
// compressing them. The first element is id, the last is the root.
func (uf *UnionFind) PathToRoot(id string) ([]string, bool) {
	idx, ok := uf.ids[id]
	if !ok {
		return nil, false
	}
	path := []string{id}
	for idx != uf.parent[idx] {
		idx = uf.parent[idx]
		path = append(path, uf.names[idx])
	}
	return path, true
}

// Components returns all connected components as slices of identifiers,
// largest first, ties broken by the first member.
func (uf *UnionFind) Components() [][]string {
	groups := make(map[int][]string)
	var roots []int
	for i := 0; i < uf.next; i++ {
		root := uf.find(i)
		if _, ok := groups[root]; !ok {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], uf.names[i])
	}
	result := make([][]string, 0, len(roots))
	for _, r := range roots {
		result = append(result, groups[r])
	}
	sortComponents(result)
	return result
}

func sortComponents(components [][]string) {
	sort.SliceStable(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
}
