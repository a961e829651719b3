// Package cart implements the unified add-to-cart flow: resolve missing
// product data, persist to the remote cart for signed-in users or merge
// into the local cart otherwise, then fan out UI notifications.
package cart

import (
	"context"
	"io"
	"log"

	"souq-gateway/internal/domain"
	"souq-gateway/internal/events"
	"souq-gateway/internal/notify"
	"souq-gateway/internal/upstream"
)

type productClient interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type remoteCart interface {
	AddCartLine(ctx context.Context, userID int64, payload upstream.CartLinePayload) error
	Cart(ctx context.Context, userID int64) ([]domain.CartLine, error)
}

type cartStore interface {
	Lines(ctx context.Context) []domain.CartLine
	SetLines(ctx context.Context, lines []domain.CartLine) error
}

type sessionStore interface {
	Current(ctx context.Context) *domain.User
}

type publisher interface {
	Publish(e events.Event)
}

// Service reconciles add-to-cart requests between the remote cart and the
// local store.
type Service struct {
	products productClient
	remote   remoteCart
	store    cartStore
	sessions sessionStore
	bus      publisher
	notifier notify.Notifier
	logger   *log.Logger
}

func New(products productClient, remote remoteCart, store cartStore, sessions sessionStore, bus publisher, notifier notify.Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		products: products,
		remote:   remote,
		store:    store,
		sessions: sessions,
		bus:      bus,
		notifier: notifier,
		logger:   logger,
	}
}

// AddInput captures one add-to-cart request. Price and Image may be zero;
// the service resolves them from the catalog on a best-effort basis.
type AddInput struct {
	ProductID   int64               `json:"productId"`
	Name        string              `json:"name"`
	Quantity    int                 `json:"quantity"`
	AddOns      []domain.AddOn      `json:"addOns,omitempty"`
	Attachments *domain.Attachments `json:"attachments,omitempty"`
	Price       float64             `json:"price,omitempty"`
	Image       string              `json:"image,omitempty"`
}

// Add ensures a cart line reflecting the request exists, remotely for a
// signed-in user or locally otherwise. It reports the outcome through the
// notifier and event bus and returns false instead of an error: no failure
// escapes to the caller, and no failure is silent.
func (s *Service) Add(ctx context.Context, in AddInput) bool {
	if in.ProductID <= 0 {
		s.notifier.Error(notify.MsgBadRequest)
		return false
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	s.resolveProduct(ctx, &in)

	line := domain.CartLine{
		ProductID:   in.ProductID,
		Name:        in.Name,
		Quantity:    in.Quantity,
		UnitPrice:   in.Price,
		Image:       in.Image,
		AddOns:      in.AddOns,
		Attachments: in.Attachments,
	}

	if user := s.sessions.Current(ctx); user != nil {
		if err := s.addRemote(ctx, user.ID, line); err == nil {
			s.announce(line)
			return true
		}
		// Remote mutation failed: degrade to the local cart rather than
		// failing the whole operation.
	}

	merged := domain.MergeLine(s.store.Lines(ctx), line)
	if err := s.store.SetLines(ctx, merged); err != nil {
		s.logger.Printf("cart: persist local cart product=%d error=%v", in.ProductID, err)
		s.notifier.Error(notify.ErrorMessage(err))
		return false
	}

	s.announce(line)
	return true
}

// resolveProduct fills missing price/image from the catalog. Lookup
// failure is non-fatal: the line proceeds with price 0 / empty image.
func (s *Service) resolveProduct(ctx context.Context, in *AddInput) {
	if in.Price > 0 && in.Image != "" {
		return
	}
	p, err := s.products.Product(ctx, in.ProductID)
	if err != nil {
		s.logger.Printf("cart: resolve product=%d error=%v", in.ProductID, err)
		return
	}
	if in.Price <= 0 {
		in.Price = p.Price
	}
	if in.Image == "" {
		in.Image = p.MainImage
	}
	if in.Name == "" {
		in.Name = p.Name
	}
}

// addRemote posts the line to the user's remote cart and, on success,
// refreshes the local mirror from the server's canonical copy. A failed
// refresh leaves the mirror stale rather than corrupting it.
func (s *Service) addRemote(ctx context.Context, userID int64, line domain.CartLine) error {
	if err := s.remote.AddCartLine(ctx, userID, payloadFor(line)); err != nil {
		s.logger.Printf("cart: remote add user=%d product=%d error=%v", userID, line.ProductID, err)
		return err
	}
	serverLines, err := s.remote.Cart(ctx, userID)
	if err != nil {
		s.logger.Printf("cart: refresh mirror user=%d error=%v", userID, err)
		return nil
	}
	if err := s.store.SetLines(ctx, serverLines); err != nil {
		s.logger.Printf("cart: write mirror user=%d error=%v", userID, err)
	}
	return nil
}

// payloadFor builds the upstream request body. Add-on pricing fields and
// attachments appear only when present; the remote API distinguishes a
// missing add-on list from an empty one.
func payloadFor(line domain.CartLine) upstream.CartLinePayload {
	p := upstream.CartLinePayload{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Price:     line.UnitPrice,
		Image:     line.Image,
	}
	if len(line.AddOns) > 0 {
		base := line.UnitPrice
		addOns := line.AddOnsTotal()
		total := line.Total()
		p.AddOns = line.AddOns
		p.BasePrice = &base
		p.AddOnsPrice = &addOns
		p.TotalPrice = &total
	}
	if line.Attachments != nil && !line.Attachments.Empty() {
		p.Attachments = line.Attachments
	}
	return p
}

// announce fires the two UI signals after storage has been updated:
// cartUpdated for badge counters, then the confirmation notice, then the
// single success toast.
func (s *Service) announce(line domain.CartLine) {
	s.bus.Publish(events.CartUpdated{})
	s.bus.Publish(events.CartNotice{
		ProductID: line.ProductID,
		Name:      line.Name,
		Image:     line.Image,
		UnitPrice: line.UnitPrice,
		Quantity:  line.Quantity,
		AddOns:    line.AddOns,
		Total:     line.Total(),
	})
	s.notifier.Success(notify.MsgCartAdded)
}

// Lines exposes the current local cart for read endpoints.
func (s *Service) Lines(ctx context.Context) []domain.CartLine {
	return s.store.Lines(ctx)
}
