// Package wishlist implements the unified wishlist mutations. Unlike the
// cart there is no anonymous mode: every operation requires a signed-in
// session and mutates the remote store first, then the local mirror.
package wishlist

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"souq-gateway/internal/domain"
	"souq-gateway/internal/events"
	"souq-gateway/internal/notify"
	"souq-gateway/internal/upstream"
)

type remoteWishlist interface {
	AddWishlist(ctx context.Context, userID, productID int64) error
	RemoveWishlist(ctx context.Context, userID, productID int64) error
}

type wishlistStore interface {
	IDs(ctx context.Context) []int64
	SetIDs(ctx context.Context, ids []int64) error
}

type sessionStore interface {
	Current(ctx context.Context) *domain.User
}

type publisher interface {
	Publish(e events.Event)
}

// Service reconciles wishlist mutations between the remote store and the
// local mirror.
type Service struct {
	remote   remoteWishlist
	store    wishlistStore
	sessions sessionStore
	bus      publisher
	notifier notify.Notifier
	logger   *log.Logger
}

func New(remote remoteWishlist, store wishlistStore, sessions sessionStore, bus publisher, notifier notify.Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		remote:   remote,
		store:    store,
		sessions: sessions,
		bus:      bus,
		notifier: notifier,
		logger:   logger,
	}
}

// Add puts the product on the remote wishlist and mirrors it locally.
// Without a session it fails immediately, before any network call.
func (s *Service) Add(ctx context.Context, productID int64) bool {
	user := s.sessions.Current(ctx)
	if user == nil {
		s.notifier.Error(notify.MsgSignInRequired)
		return false
	}

	if err := s.remote.AddWishlist(ctx, user.ID, productID); err != nil {
		s.logger.Printf("wishlist: remote add user=%d product=%d error=%v", user.ID, productID, err)
		if isBadRequest(err) {
			s.notifier.Error(notify.MsgWishlistExists)
		} else {
			s.notifier.Error(notify.MsgGeneric)
		}
		return false
	}

	// Re-derive the mirror from the freshest stored list; add is
	// idempotent on the local side.
	ids := s.store.IDs(ctx)
	if !contains(ids, productID) {
		ids = append(ids, productID)
	}
	if err := s.store.SetIDs(ctx, ids); err != nil {
		s.logger.Printf("wishlist: persist mirror user=%d error=%v", user.ID, err)
		s.notifier.Error(notify.MsgGeneric)
		return false
	}

	s.bus.Publish(events.WishlistUpdated{ProductIDs: ids})
	s.bus.Publish(events.WishlistAdded{ProductID: productID})
	s.notifier.Success(notify.MsgWishlistAdded)
	return true
}

// Remove deletes the (user, product) relation remotely and drops it from
// the mirror. Removing an entry that was never added is a graceful no-op.
func (s *Service) Remove(ctx context.Context, productID int64) bool {
	user := s.sessions.Current(ctx)
	if user == nil {
		s.notifier.Error(notify.MsgSignInRequired)
		return false
	}

	if err := s.remote.RemoveWishlist(ctx, user.ID, productID); err != nil && !isNotFound(err) {
		s.logger.Printf("wishlist: remote remove user=%d product=%d error=%v", user.ID, productID, err)
		s.notifier.Error(notify.MsgGeneric)
		return false
	}

	ids := without(s.store.IDs(ctx), productID)
	if err := s.store.SetIDs(ctx, ids); err != nil {
		s.logger.Printf("wishlist: persist mirror user=%d error=%v", user.ID, err)
		s.notifier.Error(notify.MsgGeneric)
		return false
	}

	s.bus.Publish(events.WishlistUpdated{ProductIDs: ids})
	s.bus.Publish(events.WishlistRemoved{ProductID: productID})
	s.notifier.Success(notify.MsgWishlistRemoved)
	return true
}

// IDs exposes the mirrored membership for read endpoints.
func (s *Service) IDs(ctx context.Context) []int64 {
	return s.store.IDs(ctx)
}

func isBadRequest(err error) bool {
	var se *upstream.StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusNotFound
}

func isNotFound(err error) bool {
	var se *upstream.StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
