package cart

import (
	"context"
	"encoding/json"
	"sync"

	"whatsmenu/internal/common/logger"
	"whatsmenu/internal/domain"
)

const keyPrefix = "cart:"

// Item carries the product snapshot taken when a line is first created.
type Item struct {
	ProductID string
	Name      string
	UnitPrice float64
	ImageRef  string
}

type Totals struct {
	Quantity int
	Price    float64
}

// Store keeps the authoritative in-memory cart per session and mirrors
// every change to the KV best-effort. The in-memory state is the source of
// truth for the session; a failed KV write is logged and never rolled back.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine
	kv    KV
	lg    *logger.Logger
}

func NewStore(kv KV, lg *logger.Logger) *Store {
	return &Store{
		carts: make(map[string][]domain.CartLine),
		kv:    kv,
		lg:    lg,
	}
}

// Add merges qty of the item into the session cart. A qty <= 0 is a silent
// no-op. Repeated adds of the same product increment the existing line;
// the first-seen unit price and metadata win for the session.
func (s *Store) Add(ctx context.Context, sessionID string, item Item, qty int) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load(ctx, sessionID)
	if qty <= 0 {
		return totalsOf(lines)
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  qty,
			ImageRef:  item.ImageRef,
		})
	}

	s.carts[sessionID] = lines
	s.persist(ctx, sessionID, lines)
	return totalsOf(lines)
}

// Remove decrements the matching line by exactly 1 and deletes it when the
// quantity reaches zero. Absent product ids are a no-op.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load(ctx, sessionID)
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		lines[i].Quantity--
		if lines[i].Quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		s.carts[sessionID] = lines
		s.persist(ctx, sessionID, lines)
		break
	}
	return totalsOf(lines)
}

// Clear empties the session cart unconditionally.
func (s *Store) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = nil
	s.persist(ctx, sessionID, nil)
}

// Lines returns a copy of the session's lines.
func (s *Store) Lines(ctx context.Context, sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load(ctx, sessionID)
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Totals recomputes quantity and price sums from the current lines.
func (s *Store) Totals(ctx context.Context, sessionID string) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalsOf(s.load(ctx, sessionID))
}

// load returns the in-memory lines for the session, restoring them from the
// KV on first touch. A missing or malformed snapshot restores as an empty
// cart; parse failures are logged, never surfaced.
func (s *Store) load(ctx context.Context, sessionID string) []domain.CartLine {
	if lines, ok := s.carts[sessionID]; ok {
		return lines
	}

	var lines []domain.CartLine
	raw, found, err := s.kv.Get(ctx, keyPrefix+sessionID)
	switch {
	case err != nil:
		s.lg.Warn("cart_restore_failed", err, map[string]any{"session_id": sessionID})
	case found:
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			s.lg.Warn("cart_snapshot_malformed", err, map[string]any{"session_id": sessionID})
			lines = nil
		}
	}

	s.carts[sessionID] = lines
	return lines
}

func (s *Store) persist(ctx context.Context, sessionID string, lines []domain.CartLine) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		s.lg.Warn("cart_marshal_failed", err, map[string]any{"session_id": sessionID})
		return
	}
	if err := s.kv.Set(ctx, keyPrefix+sessionID, string(b)); err != nil {
		s.lg.Warn("cart_persist_failed", err, map[string]any{"session_id": sessionID})
	}
}

func totalsOf(lines []domain.CartLine) Totals {
	var t Totals
	for _, l := range lines {
		t.Quantity += l.Quantity
		t.Price += float64(l.Quantity) * l.UnitPrice
	}
	return t
}
