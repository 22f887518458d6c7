package handler

import (
	"context"
	"net/http"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/loots"
)

// UnpaidLister lists tips that have not been credited yet
type UnpaidLister interface {
	GetUncreditedLoots(ctx context.Context) ([]domain.Loots, error)
}

// NameLinker maps a Loots name to a viewer
type NameLinker interface {
	Link(ctx context.Context, lootsName, login string) (int64, error)
}

// LinkLootsRequest maps a Loots display name to a Twitch login
type LinkLootsRequest struct {
	LootsName string `json:"loots_name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Login     string `json:"login" validate:"required,twitch_login"`
}

// LinkLootsResponse reports how many existing tips the link attached
type LinkLootsResponse struct {
	Message  string `json:"message"`
	Attached int64  `json:"attached"`
}

// LootsHandler serves the tip administration endpoints
type LootsHandler struct {
	crediter loots.UnpaidCrediter
	unpaid   UnpaidLister
	linker   NameLinker
}

// NewLootsHandler creates a new loots handler
func NewLootsHandler(crediter loots.UnpaidCrediter, unpaid UnpaidLister, linker NameLinker) *LootsHandler {
	return &LootsHandler{
		crediter: crediter,
		unpaid:   unpaid,
		linker:   linker,
	}
}

// HandleCredit credits every uncredited linked tip now instead of waiting for the next poll
// @Summary Credit unpaid tips
// @Description Pays points for every linked, uncredited tip. Skipped while the channel is offline when live-only crediting is on.
// @Tags loots
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DataResponse{data=loots.CreditResult}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/loots/credit [post]
func (h *LootsHandler) HandleCredit(w http.ResponseWriter, r *http.Request) {
	result, err := h.crediter.CreditUnpaid(r.Context())
	if err != nil {
		respondServiceError(w, r, OpCreditLoots, err)
		return
	}

	logger.FromContext(r.Context()).Info("Manual credit run finished",
		"credited", result.Credited,
		"offline", result.Offline)
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgTipsCredited, Data: result})
}

// HandleListUnpaid lists tips still waiting for credit
// @Summary List uncredited tips
// @Tags loots
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DataResponse{data=[]domain.Loots}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/loots/unpaid [get]
func (h *LootsHandler) HandleListUnpaid(w http.ResponseWriter, r *http.Request) {
	tips, err := h.unpaid.GetUncreditedLoots(r.Context())
	if err != nil {
		respondServiceError(w, r, OpListUnpaid, err)
		return
	}
	if tips == nil {
		tips = []domain.Loots{}
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: tips})
}

// HandleLink maps a Loots name to a viewer and attaches their unlinked tips
// @Summary Link a Loots name to a viewer
// @Tags loots
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body LinkLootsRequest true "Loots name and Twitch login"
// @Success 200 {object} LinkLootsResponse
// @Failure 400 {object} ValidationErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/loots/link [post]
func (h *LootsHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	var req LinkLootsRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpLinkLoots); err != nil {
		return
	}

	attached, err := h.linker.Link(r.Context(), req.LootsName, req.Login)
	if err != nil {
		respondServiceError(w, r, OpLinkLoots, err)
		return
	}

	logger.FromContext(r.Context()).Info("Loots name linked",
		"loots_name", req.LootsName,
		"login", req.Login,
		"attached", attached)
	respondJSON(w, http.StatusOK, LinkLootsResponse{Message: MsgLootsLinked, Attached: attached})
}
