package handlers

import (
	"net/http"

	"github.com/rvanleeuwen/investment-tracker/internal/api/response"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
)

// SummaryHandler handles HTTP requests for the portfolio summary.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler with the provided service dependency.
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// PortfolioSummary handles GET requests for the aggregated portfolio view.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if aggregation fails
func (h *SummaryHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryService.GetSummary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
