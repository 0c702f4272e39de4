package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pageblan/Carepulse/internal/cart"
	"github.com/Pageblan/Carepulse/internal/catalog/domain"
	"github.com/Pageblan/Carepulse/internal/catalog/repository"
	"github.com/Pageblan/Carepulse/internal/checkout"
	"github.com/Pageblan/Carepulse/internal/notify"
	"github.com/Pageblan/Carepulse/internal/session"
)

type catalogMock struct {
	medicines map[string]*domain.Medicine
	err       error
}

func (c catalogMock) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Medicine, 0, len(c.medicines))
	for _, m := range c.medicines {
		out = append(out, *m)
	}
	return out, nil
}

func (c catalogMock) GetMedicine(ctx context.Context, id string) (*domain.Medicine, error) {
	if c.err != nil {
		return nil, c.err
	}
	m, ok := c.medicines[id]
	if !ok {
		return nil, repository.ErrMedicineNotFound
	}
	return m, nil
}

func (c catalogMock) CreateMedicine(ctx context.Context, m *domain.Medicine) error {
	return c.err
}

type stubSessionCreator struct{}

func (stubSessionCreator) CreateSession(ctx context.Context, req *checkout.SessionRequest) (*checkout.Session, error) {
	return &checkout.Session{ID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

func newTestSession() *session.Session {
	store := cart.NewStore(notify.Nop{})
	builder := checkout.NewBuilder("kes", "shr_standard")
	ctrl := checkout.NewController(stubSessionCreator{}, builder, 5*time.Second, notify.Nop{})
	return &session.Session{ID: "sess-1", Cart: store, Checkout: ctrl}
}

func withSession(r *http.Request, sess *session.Session) *http.Request {
	ctx := context.WithValue(r.Context(), "cart_session", sess)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetCart_Empty(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)
	sess := newTestSession()

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/v1/cart", nil), sess)

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var view CartViewDTO
	if err := json.NewDecoder(recorder.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(view.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(view.Items))
	}
	if view.TotalPrice != "0.00" {
		t.Errorf("Expected total 0.00, got %s", view.TotalPrice)
	}
	if view.PendingSelection != 1 {
		t.Errorf("Expected pending selection 1, got %d", view.PendingSelection)
	}
}

func TestGetCart_NoSession(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/cart", nil)

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}

func TestAddItem_Success(t *testing.T) {
	catalog := catalogMock{medicines: map[string]*domain.Medicine{
		"m1": {ID: "m1", Name: "Paracetamol", Price: 4.5, PriceQty: 5.0},
	}}
	handler := NewCartHandler(catalog, 5*time.Second)
	sess := newTestSession()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "m1", Quantity: 3})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), sess)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var view CartViewDTO
	if err := json.NewDecoder(recorder.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(view.Items))
	}
	if view.Items[0].Name != "Paracetamol" {
		t.Errorf("Expected item name Paracetamol, got %s", view.Items[0].Name)
	}
	if view.Items[0].UnitPrice != "5.00" {
		t.Errorf("Expected unit price 5.00, got %s", view.Items[0].UnitPrice)
	}
	if view.TotalPrice != "15.00" {
		t.Errorf("Expected total 15.00, got %s", view.TotalPrice)
	}
	if view.TotalQuantity != 3 {
		t.Errorf("Expected total quantity 3, got %d", view.TotalQuantity)
	}
}

func TestAddItem_DefaultsToSelector(t *testing.T) {
	catalog := catalogMock{medicines: map[string]*domain.Medicine{
		"m1": {ID: "m1", Name: "Paracetamol", PriceQty: 5.0},
	}}
	handler := NewCartHandler(catalog, 5*time.Second)
	sess := newTestSession()
	sess.Cart.IncrementSelector()
	sess.Cart.IncrementSelector() // selector now 3

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "m1"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), sess)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var view CartViewDTO
	json.NewDecoder(recorder.Body).Decode(&view)
	if view.TotalQuantity != 3 {
		t.Errorf("Expected selector quantity 3 applied, got %d", view.TotalQuantity)
	}
}

func TestAddItem_MedicineNotFound(t *testing.T) {
	handler := NewCartHandler(catalogMock{medicines: map[string]*domain.Medicine{}}, 5*time.Second)
	sess := newTestSession()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "missing", Quantity: 1})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), sess)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "not_found" {
		t.Errorf("Expected error code 'not_found', got '%s'", response.Code)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	catalog := catalogMock{medicines: map[string]*domain.Medicine{
		"m1": {ID: "m1", Name: "Paracetamol", PriceQty: 5.0},
	}}
	handler := NewCartHandler(catalog, 5*time.Second)
	sess := newTestSession()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "m1", Quantity: -2})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), sess)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestAdjustQuantity_Increment(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)
	sess := newTestSession()
	sess.Cart.Add(cart.Product{ID: "m1", Name: "Paracetamol", UnitPrice: 500}, 2)

	body, _ := json.Marshal(AdjustRequestDTO{Action: "inc"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PATCH", "/api/v1/cart/items/m1", bytes.NewReader(body))
	request = withURLParam(withSession(request, sess), "product_id", "m1")

	handler.AdjustQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var view CartViewDTO
	json.NewDecoder(recorder.Body).Decode(&view)
	if view.Items[0].Quantity != 3 {
		t.Errorf("Expected quantity 3 after increment, got %d", view.Items[0].Quantity)
	}
	if view.TotalPrice != "15.00" {
		t.Errorf("Expected total 15.00, got %s", view.TotalPrice)
	}
}

func TestAdjustQuantity_DecrementFloorsAtOne(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)
	sess := newTestSession()
	sess.Cart.Add(cart.Product{ID: "m1", Name: "Paracetamol", UnitPrice: 500}, 1)

	body, _ := json.Marshal(AdjustRequestDTO{Action: "dec"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PATCH", "/api/v1/cart/items/m1", bytes.NewReader(body))
	request = withURLParam(withSession(request, sess), "product_id", "m1")

	handler.AdjustQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var view CartViewDTO
	json.NewDecoder(recorder.Body).Decode(&view)
	if view.Items[0].Quantity != 1 {
		t.Errorf("Expected quantity to stay at 1, got %d", view.Items[0].Quantity)
	}
}

func TestAdjustQuantity_InvalidAction(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)
	sess := newTestSession()

	body, _ := json.Marshal(AdjustRequestDTO{Action: "double"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PATCH", "/api/v1/cart/items/m1", bytes.NewReader(body))
	request = withURLParam(withSession(request, sess), "product_id", "m1")

	handler.AdjustQuantity(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestRemoveItem(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)
	sess := newTestSession()
	sess.Cart.Add(cart.Product{ID: "m1", Name: "Paracetamol", UnitPrice: 500}, 2)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/api/v1/cart/items/m1", nil)
	request = withURLParam(withSession(request, sess), "product_id", "m1")

	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var view CartViewDTO
	json.NewDecoder(recorder.Body).Decode(&view)
	if len(view.Items) != 0 {
		t.Errorf("Expected empty cart after remove, got %d items", len(view.Items))
	}
	if view.TotalPrice != "0.00" {
		t.Errorf("Expected total 0.00 after remove, got %s", view.TotalPrice)
	}
}

func TestAdjustSelector(t *testing.T) {
	handler := NewCartHandler(catalogMock{}, 5*time.Second)
	sess := newTestSession()

	body, _ := json.Marshal(AdjustRequestDTO{Action: "inc"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/selector", bytes.NewReader(body)), sess)

	handler.AdjustSelector(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var view CartViewDTO
	json.NewDecoder(recorder.Body).Decode(&view)
	if view.PendingSelection != 2 {
		t.Errorf("Expected pending selection 2, got %d", view.PendingSelection)
	}
}
