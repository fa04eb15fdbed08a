package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"courtside/internal/delivery/http/helpers"
	"courtside/internal/delivery/http/middleware"
	"courtside/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type ParticipationController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
	Roster  domain.RosterService
}

func NewParticipationController(logger *slog.Logger, svc domain.ParticipationService, roster domain.RosterService) *ParticipationController {
	return &ParticipationController{
		Logger:  logger,
		Service: svc,
		Roster:  roster,
	}
}

func eventIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return "", false
	}
	return eventID, true
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.EventWithParticipation `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// ListEvents godoc
// @Summary List events with participation state
// @Description Returns all events with per-event participant counts. With a valid Bearer token, each item also reports whether the caller is participating; anonymous callers get is_participating=false throughout.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *ParticipationController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	items, err := c.Service.ListEvents(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.EventWithParticipation{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// JoinSuccessResponse is the success response envelope for POST /events/{eventID}/join (200 or 201).
type JoinSuccessResponse struct {
	Data  *domain.Membership `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Join godoc
// @Summary Join an event
// @Description Registers the authenticated member as a participant of the event. Idempotent: returns 201 when a new membership is created, 200 when the caller had already joined. Requires a registered member profile.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.JoinSuccessResponse "Already joined"
// @Success 201 {object} controllers.JoinSuccessResponse "New membership created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: not_registered"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: partial_write or internal_error"
// @Router /events/{eventID}/join [post]
func (c *ParticipationController) Join(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	m, created, err := c.Service.Join(r.Context(), eventID, userID)
	if err != nil {
		c.writeWorkflowError(w, r, err)
		return
	}
	if created {
		helpers.WriteJSONSuccess(w, http.StatusCreated, m)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, m)
}

// Cancel godoc
// @Summary Cancel participation in an event
// @Description Removes the caller's membership and participant-set entry for the event. Returns 404 when the caller is not participating.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data: cancelled"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: partial_write or internal_error"
// @Router /events/{eventID}/join [delete]
func (c *ParticipationController) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Cancel(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not participating")
			return
		}
		c.writeWorkflowError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// GetRosterSuccessResponse is the success response envelope for GET /events/{eventID}/roster (200).
type GetRosterSuccessResponse struct {
	Data  *domain.Roster    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetRoster godoc
// @Summary Get the participant roster of an event
// @Description Returns display-ready participant entries for the event. Participants with a membership but no member profile are reported in unresolved_member_ids and, depending on server policy, skipped or rendered with a placeholder name; they never fail the whole roster.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetRosterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/roster [get]
func (c *ParticipationController) GetRoster(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}

	roster, err := c.Roster.Resolve(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, roster)
}

func (c *ParticipationController) writeWorkflowError(w http.ResponseWriter, r *http.Request, err error) {
	var partial *domain.PartialWriteError
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "sign in required")
	case errors.Is(err, domain.ErrNotRegistered):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeNotRegistered, "member profile required")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.As(err, &partial):
		c.Logger.ErrorContext(r.Context(), "partial write", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodePartialWrite, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
