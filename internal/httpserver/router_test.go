package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"souq-gateway/internal/domain"
	"souq-gateway/internal/events"
	cartsvc "souq-gateway/internal/service/cart"
	"souq-gateway/internal/upstream"
)

type stubCart struct {
	ok        bool
	lines     []domain.CartLine
	lastInput cartsvc.AddInput
	calls     int
}

func (s *stubCart) Add(_ context.Context, in cartsvc.AddInput) bool {
	s.calls++
	s.lastInput = in
	return s.ok
}

func (s *stubCart) Lines(_ context.Context) []domain.CartLine { return s.lines }

type stubWishlist struct {
	ok          bool
	ids         []int64
	lastProduct int64
	removed     int64
}

func (s *stubWishlist) Add(_ context.Context, id int64) bool    { s.lastProduct = id; return s.ok }
func (s *stubWishlist) Remove(_ context.Context, id int64) bool { s.removed = id; return s.ok }
func (s *stubWishlist) IDs(_ context.Context) []int64           { return s.ids }

type stubProducts struct {
	product *domain.Product
	err     error
	lastID  int64
}

func (s *stubProducts) Product(_ context.Context, id int64) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

type stubSessions struct {
	user *domain.User
}

func (s *stubSessions) Current(_ context.Context) *domain.User          { return s.user }
func (s *stubSessions) SetCurrent(_ context.Context, u domain.User) error { s.user = &u; return nil }
func (s *stubSessions) Clear(_ context.Context) error                   { s.user = nil; return nil }

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.Bus == nil {
		deps.Bus = events.New()
	}
	router, err := buildRouter(log.New(io.Discard, "", 0), deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAddToCartRelaysOutcome(t *testing.T) {
	cart := &stubCart{ok: true}
	router := testRouter(t, Deps{Cart: cart})

	body := strings.NewReader(`{"productId":5,"name":"X","quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cart", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cart.calls != 1 || cart.lastInput.ProductID != 5 || cart.lastInput.Quantity != 2 {
		t.Fatalf("unexpected input: %+v", cart.lastInput)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddToCartRejectsMalformedBody(t *testing.T) {
	cart := &stubCart{ok: true}
	router := testRouter(t, Deps{Cart: cart})

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if cart.calls != 0 {
		t.Fatalf("service must not be called on malformed body")
	}
}

func TestGetCartWrapsLines(t *testing.T) {
	cart := &stubCart{lines: []domain.CartLine{{ProductID: 5, Quantity: 1}}}
	router := testRouter(t, Deps{Cart: cart})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"cart"`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRemoveFromWishlistParsesID(t *testing.T) {
	wl := &stubWishlist{ok: true}
	router := testRouter(t, Deps{Wishlist: wl})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/wishlist/31", nil))
	if rec.Code != http.StatusOK || wl.removed != 31 {
		t.Fatalf("unexpected: code=%d removed=%d", rec.Code, wl.removed)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/wishlist/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestProductBySlug(t *testing.T) {
	products := &stubProducts{product: &domain.Product{ID: 31, Name: "قالب متجر", Price: 120}}
	router := testRouter(t, Deps{Products: products})

	path := "/api/products/" + url.PathEscape("قالب-متجر-31")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if products.lastID != 31 {
		t.Fatalf("expected lookup of 31, got %d", products.lastID)
	}
}

func TestProductBySlugRejectsInvalid(t *testing.T) {
	products := &stubProducts{}
	router := testRouter(t, Deps{Products: products})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/no-id-suffix", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for invalid slug, got %d", rec.Code)
	}
	if products.lastID != 0 {
		t.Fatalf("catalog must not be hit for invalid slug")
	}
}

func TestProductBySlugUpstreamNotFound(t *testing.T) {
	products := &stubProducts{err: &upstream.StatusError{Code: http.StatusNotFound}}
	router := testRouter(t, Deps{Products: products})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/theme-99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	sessions := &stubSessions{}
	router := testRouter(t, Deps{Sessions: sessions})

	body := strings.NewReader(`{"id":7,"firstName":"سارة","email":"s@example.com"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/session", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || sessions.user == nil || sessions.user.ID != 7 {
		t.Fatalf("unexpected session put: %d %+v", rec.Code, sessions.user)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/session", nil))
	if rec.Code != http.StatusNoContent || sessions.user != nil {
		t.Fatalf("expected cleared session, got %d %+v", rec.Code, sessions.user)
	}
}
