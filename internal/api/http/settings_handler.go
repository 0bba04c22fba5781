package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/service"
	"rentacar-backend/internal/utils"
)

// SettingsHandler serves commission settings, quotes and reports
type SettingsHandler struct {
	settingsSvc service.SettingsService
	reportSvc   service.ReportService
}

func NewSettingsHandler(settingsSvc service.SettingsService, reportSvc service.ReportService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc, reportSvc: reportSvc}
}

type quoteRequest struct {
	StartAt          string          `json:"start_at"`
	EndAt            string          `json:"end_at"`
	Price            decimal.Decimal `json:"price"`
	PriceIncludesVAT bool            `json:"price_includes_vat"`
}

func (h *SettingsHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	start, err := utils.ParseDateTime(req.StartAt)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: start_at: %v", domain.ErrInvalidInput, err))
		return
	}
	end, err := utils.ParseDateTime(req.EndAt)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: end_at: %v", domain.ErrInvalidInput, err))
		return
	}
	quote, err := h.settingsSvc.QuoteCommission(r.Context(), start, end, req.Price, req.PriceIncludesVAT)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s domain.Settings
	if err := decodeJSON(w, r, &s); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.settingsSvc.UpdateSettings(r.Context(), &s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// CommissionReport takes either from/to or year/month. format=csv returns a
// downloadable spreadsheet instead of JSON.
func (h *SettingsHandler) CommissionReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.reportSvc.CommissionReport(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") != "csv" {
		writeJSON(w, http.StatusOK, report)
		return
	}
	fileName := fmt.Sprintf("commission-%s-%s.csv", from.Format(utils.DateLayout), to.Format(utils.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if err := h.reportSvc.WriteCommissionCSV(w, report); err != nil {
		logger.Error("Failed to write commission CSV", "error", err)
	}
}

func reportPeriod(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	if q.Get("year") != "" || q.Get("month") != "" {
		year, yerr := strconv.Atoi(q.Get("year"))
		month, merr := strconv.Atoi(q.Get("month"))
		if yerr != nil || merr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: year and month must both be numbers", domain.ErrInvalidInput)
		}
		from, to, err := utils.MonthRange(year, month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return from, to, nil
	}

	from, err := queryDate(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from == nil || to == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from and to or year and month are required", domain.ErrInvalidInput)
	}
	return *from, *to, nil
}
