package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type reportService struct {
	reservationRepo repository.ReservationRepository
	supplierRepo    repository.SupplierRepository
}

func NewReportService(reservationRepo repository.ReservationRepository, supplierRepo repository.SupplierRepository) ReportService {
	return &reportService{reservationRepo: reservationRepo, supplierRepo: supplierRepo}
}

// CommissionReport totals the snapshotted commission of every reservation
// starting in [from, to), per supplier. Cancelled reservations are excluded.
func (s *reportService) CommissionReport(ctx context.Context, from, to time.Time) (*domain.CommissionReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: report period is empty", domain.ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	bySupplier := make(map[int32]*domain.SupplierCommission)
	report := &domain.CommissionReport{From: from, To: to, Suppliers: []domain.SupplierCommission{}}
	for _, r := range reservations {
		if r.Status == domain.ReservationStatusCancelled {
			continue
		}
		row, ok := bySupplier[r.SupplierID]
		if !ok {
			row = &domain.SupplierCommission{SupplierID: r.SupplierID}
			sup, err := s.supplierRepo.GetByID(ctx, r.SupplierID)
			if err != nil {
				return nil, fmt.Errorf("failed to load supplier %d: %w", r.SupplierID, err)
			}
			row.SupplierName = sup.Name
			bySupplier[r.SupplierID] = row
		}
		row.Reservations++
		row.RentalDays += r.Days
		row.BaseTotal = row.BaseTotal.Add(r.BasePrice)
		row.CommissionTotal = row.CommissionTotal.Add(r.CommissionAmount)

		report.BaseTotal = report.BaseTotal.Add(r.BasePrice)
		report.CommissionTotal = report.CommissionTotal.Add(r.CommissionAmount)
	}

	for _, row := range bySupplier {
		report.Suppliers = append(report.Suppliers, *row)
	}
	sort.Slice(report.Suppliers, func(i, j int) bool {
		if report.Suppliers[i].SupplierName != report.Suppliers[j].SupplierName {
			return report.Suppliers[i].SupplierName < report.Suppliers[j].SupplierName
		}
		return report.Suppliers[i].SupplierID < report.Suppliers[j].SupplierID
	})

	logger.Info("Commission report generated",
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
		"suppliers", len(report.Suppliers),
		"total", report.CommissionTotal.String())
	return report, nil
}

func (s *reportService) WriteCommissionCSV(w io.Writer, report *domain.CommissionReport) error {
	cw := csv.NewWriter(w)
	money := func(d decimal.Decimal) string { return d.StringFixed(2) }

	rows := [][]string{{"supplier_id", "supplier_name", "reservations", "rental_days", "base_total", "commission_total"}}
	for _, sc := range report.Suppliers {
		rows = append(rows, []string{
			strconv.Itoa(int(sc.SupplierID)),
			sc.SupplierName,
			strconv.Itoa(sc.Reservations),
			strconv.Itoa(sc.RentalDays),
			money(sc.BaseTotal),
			money(sc.CommissionTotal),
		})
	}
	rows = append(rows, []string{"", "TOTAL", "", "", money(report.BaseTotal), money(report.CommissionTotal)})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
