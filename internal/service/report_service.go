package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/repository"
	"ingresos_gastos/internal/utils"
)

// spanishMonths are the fixed short month labels used for bucket keys.
var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// MonthLabel formats t as the fixed-locale bucket key, e.g. "ene 2024".
// Movements sharing a calendar month and year share a label regardless of day.
func MonthLabel(t time.Time) string {
	return spanishMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ComputeBalance derives a balance report from the given movements.
//
// Income and expenses are summed in input order; balance is their
// difference. Each movement is also accumulated into the monthly bucket
// matching its date's month and year, contributing only to its own type's
// sum. Buckets appear in the order their month is first seen in the
// input, which is date-descending when the input comes from the store.
func ComputeBalance(movements []model.Movement) model.BalanceReport {
	var income, expenses float64

	monthlyData := []model.MonthlyBucket{}
	bucketIndex := map[string]int{}

	for _, m := range movements {
		switch m.Type {
		case model.MovementTypeIncome:
			income += m.Amount
		case model.MovementTypeExpense:
			expenses += m.Amount
		}

		month := MonthLabel(m.Date)
		idx, ok := bucketIndex[month]
		if !ok {
			monthlyData = append(monthlyData, model.MonthlyBucket{Month: month})
			idx = len(monthlyData) - 1
			bucketIndex[month] = idx
		}
		switch m.Type {
		case model.MovementTypeIncome:
			monthlyData[idx].Income += m.Amount
		case model.MovementTypeExpense:
			monthlyData[idx].Expense += m.Amount
		}
	}

	return model.BalanceReport{
		Balance:      income - expenses,
		Income:       income,
		Expenses:     expenses,
		TotalIncome:  income,
		TotalExpense: expenses,
		MonthlyData:  monthlyData,
	}
}

// ReportService derives aggregate reports from the movement store.
type ReportService interface {
	Balance(ctx context.Context) (*model.BalanceReport, error)
	ExportBalanceCSV(ctx context.Context) (string, error)
}

type reportService struct {
	movementRepo repository.MovementRepository
}

// NewReportService creates a new ReportService.
func NewReportService(movementRepo repository.MovementRepository) ReportService {
	return &reportService{movementRepo: movementRepo}
}

// Balance recomputes the report from the full movement set. There is no
// caching; concurrent writes are reflected in the next fetch.
func (s *reportService) Balance(ctx context.Context) (*model.BalanceReport, error) {
	movements, err := s.movementRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for balance: %w", err)
	}
	report := ComputeBalance(movements)
	return &report, nil
}

// ExportBalanceCSV renders the monthly breakdown as CSV with a per-month
// balance column.
func (s *reportService) ExportBalanceCSV(ctx context.Context) (string, error) {
	report, err := s.Balance(ctx)
	if err != nil {
		return "", err
	}

	headers := []string{"Mes", "Ingresos", "Egresos", "Balance"}
	rows := make([]map[string]string, 0, len(report.MonthlyData))
	for _, bucket := range report.MonthlyData {
		rows = append(rows, map[string]string{
			"Mes":      bucket.Month,
			"Ingresos": formatAmount(bucket.Income),
			"Egresos":  formatAmount(bucket.Expense),
			"Balance":  formatAmount(bucket.Income - bucket.Expense),
		})
	}
	return utils.GenerateCSV(rows, headers), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
