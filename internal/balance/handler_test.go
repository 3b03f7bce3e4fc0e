package balance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/scott3212/EventCostSplit-sub002/pkg/response"
)

func newTestRouter(svc *Service) *chi.Mux {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/events/{id}/balance", h.GetEventBalance)
	r.Get("/api/events/{id}/settlements", h.GetEventSettlements)
	r.Get("/api/balance", h.GetGlobalBalance)
	return r
}

func TestGetEventBalanceEndpoint(t *testing.T) {
	router := newTestRouter(newTestService(weekendTripStore()))

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID.String()+"/balance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool                 `json:"success"`
		Data    []*EventBalanceEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if len(body.Data) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(body.Data))
	}

	first := body.Data[0]
	if first.Name != "Alice" {
		t.Errorf("first entry name = %q, want Alice (sorted by name)", first.Name)
	}
	if first.EventBalance != 40.00 {
		t.Errorf("eventBalance = %v, want 40.00 rounded", first.EventBalance)
	}
	if first.EventPaid != 80.00 {
		t.Errorf("eventPaid = %v, want 80.00", first.EventPaid)
	}
}

func TestGetEventBalanceEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(newTestService(weekendTripStore()))

	req := httptest.NewRequest(http.MethodGet, "/api/events/99999999-0000-0000-0000-000000000000/balance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body response.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Error == nil || body.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", body.Error)
	}
}

func TestGetEventBalanceEndpoint_InvalidID(t *testing.T) {
	router := newTestRouter(newTestService(weekendTripStore()))

	req := httptest.NewRequest(http.MethodGet, "/api/events/not-a-uuid/balance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
