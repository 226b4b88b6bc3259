package repository

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: points DESC, then wrestler name ASC. "less" means ranks
// earlier, so in-order traversal yields the standings from best to worst.

type node struct {
	name   string
	points int
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func less(aPoints int, aName string, bPoints int, bName string) bool {
	if aPoints != bPoints {
		return aPoints > bPoints
	}
	return aName < bName
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

// priority hashes the name so the tree shape depends only on the set of
// wrestlers, not on insertion order.
func priority(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

func insert(n *node, name string, points int) *node {
	if n == nil {
		return &node{name: name, points: points, prio: priority(name), size: 1}
	}
	if less(points, name, n.points, n.name) {
		n.left = insert(n.left, name, points)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, name, points)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, name string, points int) *node {
	if n == nil {
		return nil
	}
	switch {
	case points == n.points && name == n.name:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, name, points)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, name, points)
		}
	case less(points, name, n.points, n.name):
		n.left = deleteNode(n.left, name, points)
	default:
		n.right = deleteNode(n.right, name, points)
	}
	fix(n)
	return n
}

// countAbove returns how many wrestlers have strictly more than points.
func countAbove(n *node, points int) int {
	count := 0
	for n != nil {
		if n.points > points {
			count += nsize(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, Entry{WrestlerName: n.name, TotalPoints: n.points})
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// TreapStore keeps the standings ordered for rank and top-N reads.
type TreapStore struct {
	mu       sync.RWMutex
	root     *node
	byName   map[string]int
	folded   map[string]string // lower-cased name -> stored name
	maxLimit int
}

// NewTreapStore constructs an empty treap store.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byName: make(map[string]int),
		folded: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace rebuilds the standings from summary. Readers see either the old
// standings or the new ones, never a mix.
func (s *TreapStore) Replace(ctx context.Context, summary []model.SummaryEntry) error {
	var root *node
	byName := make(map[string]int, len(summary))
	folded := make(map[string]string, len(summary))
	for _, e := range summary {
		name := strings.TrimSpace(e.WrestlerName)
		if name == "" {
			return ErrInvalidName
		}
		if old, ok := byName[name]; ok {
			root = deleteNode(root, name, old)
		}
		root = insert(root, name, e.TotalPoints)
		byName[name] = e.TotalPoints
		folded[strings.ToLower(name)] = name
	}

	s.mu.Lock()
	s.root, s.byName, s.folded = root, byName, folded
	s.mu.Unlock()

	metrics.UpdateStandingsSize(len(byName))
	return nil
}

// upsert records points for one wrestler in place.
func (s *TreapStore) upsert(wrestler string, points int) error {
	name := strings.TrimSpace(wrestler)
	if name == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	if old, ok := s.byName[name]; ok {
		s.root = deleteNode(s.root, name, old)
	}
	s.root = insert(s.root, name, points)
	s.byName[name] = points
	s.folded[strings.ToLower(name)] = name
	size := len(s.byName)
	s.mu.Unlock()

	metrics.UpdateStandingsSize(size)
	return nil
}

// Rank returns the entry for wrestler.
func (s *TreapStore) Rank(ctx context.Context, wrestler string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStandingsQuery("rank", time.Since(start).Seconds())
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.TrimSpace(wrestler)
	points, ok := s.byName[name]
	if !ok {
		name, ok = s.folded[strings.ToLower(name)]
		if !ok {
			return Entry{}, ErrNotFound
		}
		points = s.byName[name]
	}
	return Entry{
		Rank:         countAbove(s.root, points) + 1,
		WrestlerName: name,
		TotalPoints:  points,
	}, nil
}

// TopN returns the first n entries of the standings.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	if s.maxLimit > 0 && n > s.maxLimit {
		n = s.maxLimit
	}

	start := time.Now()
	defer func() {
		metrics.RecordStandingsQuery("top_n", time.Since(start).Seconds())
	}()

	s.mu.RLock()
	out := make([]Entry, 0, min(n, nsize(s.root)))
	collectTopN(s.root, n, &out)
	s.mu.RUnlock()

	assignRanksWithTies(out)
	return out, nil
}

// Count returns the number of wrestlers in the standings.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// assignRanksWithTies expects entries in standings order starting at the
// top; equal points share the rank of the first of them.
func assignRanksWithTies(entries []Entry) {
	for i := range entries {
		if i > 0 && entries[i].TotalPoints == entries[i-1].TotalPoints {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}
