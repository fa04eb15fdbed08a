package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"courtside/internal/delivery/http/helpers"
	"courtside/internal/delivery/http/middleware"
	"courtside/internal/domain"
)

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterMemberRequest is the request body for POST /members.
type RegisterMemberRequest struct {
	AccountName string `json:"account_name"`
}

// Validate implements helpers.Validator.
func (r *RegisterMemberRequest) Validate() []string {
	if strings.TrimSpace(r.AccountName) == "" {
		return []string{"account_name is required"}
	}
	return nil
}

// MemberSuccessResponse is the success response envelope for member endpoints.
type MemberSuccessResponse struct {
	Data  *domain.Member    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Register godoc
// @Summary Register a member profile
// @Description Registers an account name for the authenticated user. Required before joining events. One profile per user.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.RegisterMemberRequest true "Account name"
// @Success 201 {object} controllers.MemberSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members [post]
func (c *MemberController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	member, err := c.Service.Register(r.Context(), userID, req.AccountName)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "member already registered")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// Me godoc
// @Summary Get the caller's member profile
// @Description Returns the authenticated user's member profile. A 404 with error.code not_registered means the user must register an account name first.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MemberSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_registered"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /members/me [get]
func (c *MemberController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	member, err := c.Service.GetByAuthorID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotRegistered, "member profile not registered")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}
