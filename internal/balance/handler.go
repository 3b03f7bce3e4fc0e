package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/internal/event"
	"github.com/scott3212/EventCostSplit-sub002/pkg/response"
)

// Handler handles HTTP requests for balance and settlement queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetEventBalance handles GET /events/{id}/balance
// @Summary      Get event balances
// @Description  Per-participant paid/owes/net totals for one event, recomputed from current records
// @Tags         balances
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=[]EventBalanceEntry}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id}/balance [get]
func (h *Handler) GetEventBalance(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	balances, err := h.service.GetEventBalance(r.Context(), eventID)
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	entries := make([]*EventBalanceEntry, len(balances))
	for i, b := range balances {
		entries[i] = b.ToEventEntry()
	}

	response.JSON(w, http.StatusOK, entries)
}

// GetEventSettlements handles GET /events/{id}/settlements
// @Summary      Get event settlement suggestions
// @Description  Ordered transfers that settle the event's outstanding balances
// @Tags         balances
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=[]SuggestionResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /events/{id}/settlements [get]
func (h *Handler) GetEventSettlements(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	suggestions, err := h.service.GetEventSettlements(r.Context(), eventID)
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toSuggestionResponses(suggestions))
}

// GetGlobalBalance handles GET /balance
// @Summary      Get global balances
// @Description  Per-user totals across all events and payments
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GlobalBalanceEntry}
// @Router       /balance [get]
func (h *Handler) GetGlobalBalance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.GetGlobalBalance(r.Context())
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	entries := make([]*GlobalBalanceEntry, len(balances))
	for i, b := range balances {
		entries[i] = b.ToGlobalEntry()
	}

	response.JSON(w, http.StatusOK, entries)
}

// GetGlobalSettlements handles GET /settlements
// @Summary      Get global settlement suggestions
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]SuggestionResponse}
// @Failure      422 {object} response.APIResponse
// @Router       /settlements [get]
func (h *Handler) GetGlobalSettlements(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.GetGlobalSettlements(r.Context())
	if err != nil {
		writeBalanceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toSuggestionResponses(suggestions))
}

func toSuggestionResponses(suggestions []Suggestion) []*SuggestionResponse {
	responses := make([]*SuggestionResponse, len(suggestions))
	for i := range suggestions {
		responses[i] = suggestions[i].ToResponse()
	}
	return responses
}

func writeBalanceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrImbalancedLedger):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalError(w, "Failed to compute balances")
	}
}
