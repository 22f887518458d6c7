package handler

import (
	"net/http"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/prizepool"
)

// SetChanceRequest sets the live chance of one prize category
type SetChanceRequest struct {
	Type   int     `json:"type" validate:"gte=0"`
	Chance float64 `json:"chance" validate:"gte=0,lte=100"`
}

// ConsumePrizeRequest takes one unit of a prize out of a category
type ConsumePrizeRequest struct {
	Type int    `json:"type" validate:"gte=0"`
	Name string `json:"name" validate:"required,max=100"`
}

// RollResponse is the outcome of a prize draw
type RollResponse struct {
	Message string                `json:"message"`
	Result  *prizepool.DrawResult `json:"result"`
}

// PrizeHandler serves the prize draw endpoints
type PrizeHandler struct {
	prizeSvc prizepool.Service
}

// NewPrizeHandler creates a new prize handler
func NewPrizeHandler(prizeSvc prizepool.Service) *PrizeHandler {
	return &PrizeHandler{prizeSvc: prizeSvc}
}

// HandleRoll runs one draw over every category
// @Summary Roll the prize draw
// @Description Runs one pity draw over every prize category. A null prize means nothing was won.
// @Tags prizes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RollResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/prizes/roll [post]
func (h *PrizeHandler) HandleRoll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	result, err := h.prizeSvc.RollPrize(r.Context(), prizepool.SourceAPI)
	if err != nil {
		respondServiceError(w, r, OpRollPrize, err)
		return
	}

	message := MsgNoPrize
	if result.Won() {
		message = MsgPrizeWon
		log.Info("Prize rolled", "prize", result.Prize.Name, "pool_type", result.PoolType)
	}
	respondJSON(w, http.StatusOK, RollResponse{Message: message, Result: result})
}

// HandleListPools returns every category with its stock and chances
// @Summary List prize categories
// @Description Lists every category with its remaining prizes, base chance and current chance
// @Tags prizes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DataResponse{data=[]domain.PrizePool}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/prizes [get]
func (h *PrizeHandler) HandleListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.prizeSvc.ListPools(r.Context())
	if err != nil {
		respondServiceError(w, r, OpListPrizes, err)
		return
	}
	if pools == nil {
		pools = []domain.PrizePool{}
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: pools})
}

// HandleSetChance overrides a category's live chance
// @Summary Set a category's current chance
// @Tags prizes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SetChanceRequest true "New current chance"
// @Success 200 {object} DataResponse{data=domain.PrizePool}
// @Failure 400 {object} ValidationErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Category not configured"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/prizes/chance [post]
func (h *PrizeHandler) HandleSetChance(w http.ResponseWriter, r *http.Request) {
	var req SetChanceRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpSetChance); err != nil {
		return
	}

	pool, err := h.prizeSvc.SetChance(r.Context(), req.Type, req.Chance)
	if err != nil {
		respondServiceError(w, r, OpSetChance, err)
		return
	}

	logger.FromContext(r.Context()).Info("Prize chance set", "pool_type", req.Type, "chance", req.Chance)
	respondJSON(w, http.StatusOK, DataResponse{Data: pool})
}

// HandleConsume removes one unit of a prize, e.g. after a manual award
// @Summary Consume one prize
// @Tags prizes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ConsumePrizeRequest true "Category and prize name"
// @Success 200 {object} DataResponse{data=domain.PrizePool}
// @Failure 400 {object} ValidationErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Category or prize not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/prizes/consume [post]
func (h *PrizeHandler) HandleConsume(w http.ResponseWriter, r *http.Request) {
	var req ConsumePrizeRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpConsume); err != nil {
		return
	}

	pool, err := h.prizeSvc.Consume(r.Context(), req.Type, req.Name)
	if err != nil {
		respondServiceError(w, r, OpConsume, err)
		return
	}

	logger.FromContext(r.Context()).Info("Prize consumed", "pool_type", req.Type, "prize", req.Name)
	respondJSON(w, http.StatusOK, DataResponse{Data: pool})
}
