package service

import (
	"time"

	"finanzas-ui/database/model"
	"finanzas-ui/web/authz"
)

// ReportService aggregates movements into the figures the dashboard
// charts: daily totals for a month and per-user balances.
type ReportService struct {
	movementService MovementService
}

// DailyTotal is one day of a monthly summary.
type DailyTotal struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthlySummary covers one calendar month under a visibility scope.
type MonthlySummary struct {
	Year    int          `json:"year"`
	Month   int          `json:"month"`
	Income  float64      `json:"income"`
	Expense float64      `json:"expense"`
	Balance float64      `json:"balance"`
	Days    []DailyTotal `json:"days"`
}

// UserTotal is one user's aggregate for the per-user report.
type UserTotal struct {
	UserId    int     `json:"userId"`
	Name      string  `json:"name"`
	Movements int     `json:"movements"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Balance   float64 `json:"balance"`
}

func monthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Summary computes daily income/expense totals for the given month. Every
// day of the month appears, zero-filled, so charts need no gap handling.
func (s *ReportService) Summary(scope authz.Scope, ownerId, year int, month time.Month) (*MonthlySummary, error) {
	from, to := monthRange(year, month)
	movements, err := s.movementService.movementsBetween(scope, ownerId, from, to)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{Year: year, Month: int(month)}
	index := make(map[string]int)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		index[key] = len(summary.Days)
		summary.Days = append(summary.Days, DailyTotal{Date: key})
	}

	for i := range movements {
		m := &movements[i]
		pos, ok := index[m.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		if m.Type == model.TypeIngreso {
			summary.Days[pos].Income += m.Amount
			summary.Income += m.Amount
		} else {
			summary.Days[pos].Expense += m.Amount
			summary.Expense += m.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return summary, nil
}

// PerUser computes income/expense/balance per owning user for the given
// month. Admin-only upstream; it always sees every movement.
func (s *ReportService) PerUser(year int, month time.Month) ([]UserTotal, error) {
	from, to := monthRange(year, month)
	movements, err := s.movementService.movementsBetween(authz.ScopeAll, 0, from, to)
	if err != nil {
		return nil, err
	}

	userService := UserService{}
	users, err := userService.ListUsers()
	if err != nil {
		return nil, err
	}

	totals := make([]UserTotal, 0, len(users))
	index := make(map[int]int, len(users))
	for _, u := range users {
		index[u.Id] = len(totals)
		totals = append(totals, UserTotal{UserId: u.Id, Name: u.Name})
	}

	for i := range movements {
		m := &movements[i]
		pos, ok := index[m.UserId]
		if !ok {
			continue
		}
		totals[pos].Movements++
		if m.Type == model.TypeIngreso {
			totals[pos].Income += m.Amount
		} else {
			totals[pos].Expense += m.Amount
		}
	}
	for i := range totals {
		totals[i].Balance = totals[i].Income - totals[i].Expense
	}
	return totals, nil
}
