package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
	"rentacar-backend/internal/utils"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
}

func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

// reservationRequest accepts dates as yyyy-mm-dd or RFC3339
type reservationRequest struct {
	CustomerID           int32           `json:"customer_id"`
	SupplierID           int32           `json:"supplier_id"`
	BranchID             *int32          `json:"branch_id"`
	CarGroup             string          `json:"car_group"`
	StartAt              string          `json:"start_at"`
	EndAt                string          `json:"end_at"`
	Price                decimal.Decimal `json:"price"`
	PriceIncludesVAT     bool            `json:"price_includes_vat"`
	SupplierConfirmation string          `json:"supplier_confirmation"`
	Notes                string          `json:"notes"`
}

func (req *reservationRequest) toDomain() (*domain.Reservation, error) {
	start, err := utils.ParseDateTime(req.StartAt)
	if err != nil {
		return nil, fmt.Errorf("%w: start_at: %v", domain.ErrInvalidInput, err)
	}
	end, err := utils.ParseDateTime(req.EndAt)
	if err != nil {
		return nil, fmt.Errorf("%w: end_at: %v", domain.ErrInvalidInput, err)
	}
	return &domain.Reservation{
		CustomerID:           req.CustomerID,
		SupplierID:           req.SupplierID,
		BranchID:             req.BranchID,
		CarGroup:             req.CarGroup,
		StartAt:              start,
		EndAt:                end,
		Price:                req.Price,
		PriceIncludesVAT:     req.PriceIncludesVAT,
		SupplierConfirmation: req.SupplierConfirmation,
		Notes:                req.Notes,
	}, nil
}

type reservationListResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	Total        int32                `json:"total"`
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReservationFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	reservations, total, err := h.reservationSvc.ListReservations(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservationListResponse{Reservations: reservations, Total: total})
}

func parseReservationFilter(r *http.Request) (domain.ReservationFilter, error) {
	var filter domain.ReservationFilter
	var err error
	if filter.CustomerID, err = queryInt32(r, "customer_id"); err != nil {
		return filter, err
	}
	if filter.SupplierID, err = queryInt32(r, "supplier_id"); err != nil {
		return filter, err
	}
	if filter.Page, err = queryInt32(r, "page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt32(r, "page_size"); err != nil {
		return filter, err
	}

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		filter.Status = domain.ReservationStatus(status)
	}
	if filter.From, err = queryDate(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = queryDate(r, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
	}
	return &t, nil
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := req.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.reservationSvc.CreateReservation(r.Context(), res)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	details, err := h.reservationSvc.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := req.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	res.ID = id
	updated, err := h.reservationSvc.UpdateReservation(r.Context(), res)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.reservationSvc.CancelReservation)
}

func (h *ReservationHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.reservationSvc.CloseReservation)
}

func (h *ReservationHandler) changeStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int32) (*domain.Reservation, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type paymentRequest struct {
	Amount decimal.Decimal      `json:"amount"`
	Method domain.PaymentMethod `json:"method"`
	PaidOn string               `json:"paid_on"`
	Notes  string               `json:"notes"`
}

func (h *ReservationHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req paymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p := &domain.Payment{
		ReservationID: id,
		Amount:        req.Amount,
		Method:        req.Method,
		Notes:         req.Notes,
	}
	if req.PaidOn != "" {
		paidOn, err := utils.ParseDateTime(req.PaidOn)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: paid_on: %v", domain.ErrInvalidInput, err))
			return
		}
		p.PaidOn = paidOn
	}
	created, err := h.reservationSvc.AddPayment(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ReservationHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.reservationSvc.DeletePayment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
