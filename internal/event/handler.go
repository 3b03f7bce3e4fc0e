package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/scott3212/EventCostSplit-sub002/pkg/response"
)

// Handler handles HTTP requests for event operations
type Handler struct {
	service *Service
}

// NewHandler creates a new event handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for event endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	// Participant management
	r.Get("/{id}/participants", h.GetParticipants)
	r.Post("/{id}/participants", h.AddParticipant)
	r.Delete("/{id}/participants/{userId}", h.RemoveParticipant)

	return r
}

// Create handles POST /events
// @Summary      Create a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body CreateEventRequest true "Event creation request"
// @Success      201 {object} response.APIResponse{data=EventResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /events [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" || req.Location == "" {
		response.BadRequest(w, "Name and location are required")
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create event")
		return
	}

	response.JSON(w, http.StatusCreated, event.ToResponse())
}

// List handles GET /events
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]EventResponse}
// @Router       /events [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	events, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list events")
		return
	}

	eventResponses := make([]*EventResponse, len(events))
	for i, e := range events {
		eventResponses[i] = e.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, eventResponses, meta)
}

// GetByID handles GET /events/{id}
// @Summary      Get event by ID
// @Description  Get an event with its participant list
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	event, participants, err := h.service.GetByIDWithParticipants(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get event")
		return
	}

	eventResp := event.ToResponse()
	eventResp.Participants = make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		eventResp.Participants[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, eventResp)
}

// Update handles PUT /events/{id}
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id path string true "Event ID"
// @Param        request body UpdateEventRequest true "Event update request"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	event, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update event")
		return
	}

	response.JSON(w, http.StatusOK, event.ToResponse())
}

// Delete handles DELETE /events/{id}
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete event")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// GetParticipants handles GET /events/{id}/participants
// @Summary      List event participants
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=[]ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id}/participants [get]
func (h *Handler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	participants, err := h.service.GetParticipants(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get participants")
		return
	}

	participantResponses := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		participantResponses[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, participantResponses)
}

// AddParticipant handles POST /events/{id}/participants
// @Summary      Add a participant to an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id path string true "Event ID"
// @Param        request body AddParticipantRequest true "Participant to add"
// @Success      201 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /events/{id}/participants [post]
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	participant, err := h.service.AddParticipant(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrParticipantAlreadyExists) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add participant")
		return
	}

	response.JSON(w, http.StatusCreated, participant.ToResponse())
}

// RemoveParticipant handles DELETE /events/{id}/participants/{userId}
// @Summary      Remove a participant from an event
// @Description  Removes the user from the participant set. Historical expenses are kept; balance computation sanitizes the stale reference.
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Param        userId path string true "User ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id}/participants/{userId} [delete]
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.RemoveParticipant(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to remove participant")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Participant removed successfully"})
}
