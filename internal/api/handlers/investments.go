package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/api/response"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
	"github.com/rvanleeuwen/investment-tracker/internal/validation"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the investmentService.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// ListInvestments handles GET requests to retrieve all investments.
//
// Endpoint: GET /api/investments
// Response: 200 OK with array of Investment
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) ListInvestments(w http.ResponseWriter, _ *http.Request) {
	investments, err := h.investmentService.ListInvestments()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestments.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// GetInvestment handles GET requests to retrieve a single investment by ID.
//
// Endpoint: GET /api/investments/{uuid}
// Response: 200 OK with Investment
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the investment does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	investment, err := h.investmentService.GetInvestment(investmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestment.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// CreateInvestment handles POST requests to create a new investment.
// A Purchase transaction is synthesized alongside the created record.
//
// Endpoint: POST /api/investments
// Request Body: CreateInvestmentRequest
// Response: 201 Created with Investment
// Error: 400 Bad Request if validation fails or the percentages do not sum to 100
// Error: 500 Internal Server Error if creation fails
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.RespondValidationError(w, verr)
			return
		}
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	investment, err := h.investmentService.CreateInvestment(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPercentageSum) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrPercentageSum.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create investment")
		return
	}

	response.RespondJSON(w, http.StatusCreated, investment)
}

// UpdateInvestment handles PUT requests to update an existing investment.
// All fields are optional; the resulting merged record must still satisfy
// the percentage-sum invariant. An Edit transaction is synthesized.
//
// Endpoint: PUT /api/investments/{uuid}
// Request Body: UpdateInvestmentRequest (all fields optional)
// Response: 200 OK with updated Investment
// Error: 400 Bad Request if validation fails or the resulting percentages do not sum to 100
// Error: 404 Not Found if the investment does not exist
// Error: 500 Internal Server Error if the update fails
func (h *InvestmentHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateUpdateInvestment(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.RespondValidationError(w, verr)
			return
		}
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	investment, err := h.investmentService.UpdateInvestment(r.Context(), investmentID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error())
			return
		}
		if errors.Is(err, apperrors.ErrPercentageSum) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrPercentageSum.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update investment")
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// DeleteInvestment handles DELETE requests to remove an investment.
// The body is optional and may carry the acting user. A Deletion
// transaction is synthesized; nothing is written when the investment does
// not exist.
//
// Endpoint: DELETE /api/investments/{uuid}
// Request Body: optional DeleteInvestmentRequest (deletedBy)
// Response: 200 OK with confirmation message
// Error: 404 Not Found if the investment does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	req, err := parseOptionalJSON[request.DeleteInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.investmentService.DeleteInvestment(r.Context(), investmentID, req.DeletedBy); err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investment")
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "investment deleted"})
}
