// Package store persists the storefront session state: cart, wishlist
// mirror, and signed-in user. It is the gateway's stand-in for the
// browser's local storage, keyed by the same names.
package store

import (
	"context"
	"encoding/json"

	"souq-gateway/internal/domain"
)

// Storage keys, namespaced exactly like the browser counterpart.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyUser     = "user"
)

// KV is the persistence primitive. Get returns (nil, nil) for an absent
// key; implementations never interpret values.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartStore reads and writes the cart line array.
type CartStore struct {
	kv KV
}

func NewCartStore(kv KV) *CartStore {
	return &CartStore{kv: kv}
}

// Lines returns the stored cart. A missing, unparseable, or wrong-shaped
// value reads as an empty cart; corruption never surfaces as an error.
func (s *CartStore) Lines(ctx context.Context) []domain.CartLine {
	raw, err := s.kv.Get(ctx, KeyCart)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil
	}
	return lines
}

// SetLines overwrites the stored cart with the given lines.
func (s *CartStore) SetLines(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyCart, raw)
}

// WishlistStore reads and writes the wishlist membership mirror.
type WishlistStore struct {
	kv KV
}

func NewWishlistStore(kv KV) *WishlistStore {
	return &WishlistStore{kv: kv}
}

// IDs returns the mirrored membership, empty on absence or corruption.
func (s *WishlistStore) IDs(ctx context.Context) []int64 {
	raw, err := s.kv.Get(ctx, KeyWishlist)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

// SetIDs overwrites the mirrored membership.
func (s *WishlistStore) SetIDs(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyWishlist, raw)
}

// SessionStore reads and writes the signed-in user record.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Current returns the signed-in user, or nil for an anonymous session.
// A corrupt record reads as anonymous.
func (s *SessionStore) Current(ctx context.Context) *domain.User {
	raw, err := s.kv.Get(ctx, KeyUser)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == 0 {
		return nil
	}
	return &u
}

// SetCurrent stores the signed-in user.
func (s *SessionStore) SetCurrent(ctx context.Context, u domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyUser, raw)
}

// Clear removes the session record.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyUser)
}
