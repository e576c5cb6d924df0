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

// SaleHandler handles HTTP requests for sale endpoints.
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new SaleHandler with the provided service dependency.
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// ListSales handles GET requests to retrieve all sales, sorted descending
// by sale date.
//
// Endpoint: GET /api/sales
// Response: 200 OK with array of Sale
// Error: 500 Internal Server Error if retrieval fails
func (h *SaleHandler) ListSales(w http.ResponseWriter, _ *http.Request) {
	sales, err := h.saleService.ListSales()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSales.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sales)
}

// GetSale handles GET requests to retrieve a single sale by ID.
//
// Endpoint: GET /api/sales/{uuid}
// Response: 200 OK with Sale
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the sale does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "uuid")

	sale, err := h.saleService.GetSale(saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSaleNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSaleNotFound.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSale.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sale)
}

// CreateSale handles POST requests to record a sale against an investment.
// The investment's current value is reduced by the sale amount and a Sale
// transaction is synthesized, all atomically.
//
// Endpoint: POST /api/sales
// Request Body: CreateSaleRequest
// Response: 201 Created with Sale
// Error: 400 Bad Request if validation fails, the percentages do not sum
// to 100, or the sale amount exceeds the investment's current value
// Error: 404 Not Found if the referenced investment does not exist
// Error: 500 Internal Server Error if creation fails
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateCreateSale(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.RespondValidationError(w, verr)
			return
		}
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestmentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error())
		case errors.Is(err, apperrors.ErrPercentageSum):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrPercentageSum.Error())
		case errors.Is(err, apperrors.ErrSaleExceedsValue):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrSaleExceedsValue.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create sale")
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, sale)
}
