package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/event"
	"github.com/scott3212/EventCostSplit-sub002/pkg/response"
)

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	// Event-based listing
	r.Get("/event/{eventId}", h.ListByEvent)

	return r
}

// Create handles POST /payments
// @Summary      Record a payment
// @Description  Record money a user paid in to settle their balance, optionally scoped to an event
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /payments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	payment, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidPayer) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create payment")
		return
	}

	response.JSON(w, http.StatusCreated, payment.ToResponse())
}

// GetByID handles GET /payments/{id}
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	payment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment")
		return
	}

	response.JSON(w, http.StatusOK, payment.ToResponse())
}

// ListByEvent handles GET /payments/event/{eventId}
// @Summary      List payments by event
// @Tags         payments
// @Produce      json
// @Param        eventId path string true "Event ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Router       /payments/event/{eventId} [get]
func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	payments, total, err := h.service.ListByEventID(r.Context(), eventID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list payments")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, paymentResponses, meta)
}

// Delete handles DELETE /payments/{id}
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete payment")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}
