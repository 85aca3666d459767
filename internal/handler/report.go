package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/segyhp/fintrack/internal/domain"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/segyhp/fintrack/pkg/response"
)

// ReportReader serves the three performance reports.
type ReportReader interface {
	GetUserCredits(ctx context.Context, userID int64) ([]domain.CreditLedgerEntry, error)
	GetYearPerformance(ctx context.Context, year int) ([]domain.MonthlyPerformance, error)
	GetPlansPerformance(ctx context.Context, checkDate domain.Date) ([]domain.PlanPerformance, error)
}

type ReportHandler struct {
	reports   ReportReader
	validator *validator.Validate
}

func NewReportHandler(reports ReportReader) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		validator: validator.New(),
	}
}

type userCreditsRequest struct {
	UserID int64 `validate:"gt=0"`
}

type yearPerformanceRequest struct {
	Year int `validate:"gte=1900,lte=2999"`
}

type plansPerformanceRequest struct {
	CheckDate string `validate:"required,datetime=2006-01-02"`
}

// GetUserCredits handles GET /user_credits/{userId}
func (h *ReportHandler) GetUserCredits(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		response.FromError(w, customError.WrapInvalidRequest("userId must be an integer", err))
		return
	}

	if err := h.validator.Struct(userCreditsRequest{UserID: userID}); err != nil {
		response.FromError(w, customError.WrapInvalidRequest("userId must be positive", err))
		return
	}

	entries, err := h.reports.GetUserCredits(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if len(entries) == 0 {
		response.NotFound(w, "No credits found for this user")
		return
	}

	response.Success(w, entries)
}

// GetYearPerformance handles GET /year_performance?year=YYYY
func (h *ReportHandler) GetYearPerformance(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.FromError(w, customError.WrapInvalidRequest("year must be an integer", err))
		return
	}

	if err := h.validator.Struct(yearPerformanceRequest{Year: year}); err != nil {
		response.FromError(w, customError.WrapInvalidRequest("year is out of range", err))
		return
	}

	result, err := h.reports.GetYearPerformance(r.Context(), year)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPlansPerformance handles GET /plans_performance?check_date=YYYY-MM-DD
func (h *ReportHandler) GetPlansPerformance(w http.ResponseWriter, r *http.Request) {
	req := plansPerformanceRequest{CheckDate: r.URL.Query().Get("check_date")}
	if err := h.validator.Struct(req); err != nil {
		response.FromError(w, customError.WrapInvalidRequest("check_date must be a YYYY-MM-DD date", err))
		return
	}

	checkDate, err := domain.ParseDate(req.CheckDate)
	if err != nil {
		response.FromError(w, customError.WrapInvalidRequest("check_date must be a YYYY-MM-DD date", err))
		return
	}

	result, err := h.reports.GetPlansPerformance(r.Context(), checkDate)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}
