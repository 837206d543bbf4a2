/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry validator/v10 struct tags; handlers run the shared
  validator before touching the store. DTOs are pure data carriers.

DECIMAL POLICY:
  Hour amounts cross the wire as float64 plus an "HH:MM" display string.
  decimal.Decimal is internal only; clients get both representations so
  UI code never re-implements the formatting.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/hours-engine/hours"
	"github.com/warp/hours-engine/schedule"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// COMPANIES AND WORKERS
// =============================================================================

type CompanyDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateCompanyRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

type WorkerDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	HireDate  string `json:"hire_date"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateWorkerRequest struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	HireDate  string `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

// =============================================================================
// SCHEDULE ROWS
// =============================================================================

type RowDTO struct {
	ID             string  `json:"id"`
	WorkerID       string  `json:"worker_id"`
	Date           string  `json:"date"`
	Start          string  `json:"start,omitempty"`
	End            string  `json:"end,omitempty"`
	IsHoliday      bool    `json:"is_holiday"`
	IsVacation     bool    `json:"is_vacation"`
	IsMedicalLeave bool    `json:"is_medical_leave"`
	NegativeHours  float64 `json:"negative_hours"`
	IsNegativeDay  bool    `json:"is_negative_day"`
	PaidHours      float64 `json:"paid_hours"`
	PaidHourType   string  `json:"paid_hour_type,omitempty"`
}

// SaveRowRequest creates or updates one schedule row. Hour amounts must
// be non-negative; the engine would clamp them anyway, but rejecting
// early gives the client a useful error.
type SaveRowRequest struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	IsHoliday      bool    `json:"is_holiday"`
	IsVacation     bool    `json:"is_vacation"`
	IsMedicalLeave bool    `json:"is_medical_leave"`
	NegativeHours  float64 `json:"negative_hours" validate:"gte=0"`
	IsNegativeDay  bool    `json:"is_negative_day"`
	PaidHours      float64 `json:"paid_hours" validate:"gte=0"`
	PaidHourType   string  `json:"paid_hour_type" validate:"omitempty,oneof=normal overtime night holiday"`
}

// =============================================================================
// BREAKDOWNS AND SUMMARIES
// =============================================================================

// BreakdownDTO carries one day's four-bucket split, as numbers and as
// "HH:MM" display strings.
type BreakdownDTO struct {
	Normal   float64 `json:"normal"`
	Overtime float64 `json:"overtime"`
	Night    float64 `json:"night"`
	Holiday  float64 `json:"holiday"`
	Display  string  `json:"display"` // total as HH:MM
}

type DaySummaryDTO struct {
	Date          string       `json:"date"`
	Breakdown     BreakdownDTO `json:"breakdown"`
	DebtRemaining float64      `json:"debt_remaining"`
	PaidApplied   float64      `json:"paid_applied"`
	NegativeDay   bool         `json:"negative_day"`
}

type TotalsDTO struct {
	Normal   float64 `json:"normal"`
	Overtime float64 `json:"overtime"`
	Night    float64 `json:"night"`
	Holiday  float64 `json:"holiday"`
	Debt     float64 `json:"debt"`
	Paid     float64 `json:"paid"`
}

type SummaryDTO struct {
	WorkerID    string          `json:"worker_id"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Days        []DaySummaryDTO `json:"days"`
	Totals      TotalsDTO       `json:"totals"`
}

// =============================================================================
// HOLIDAYS AND EXTERNAL COUNTS
// =============================================================================

type HolidayDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

type CreateHolidayRequest struct {
	CompanyID string `json:"company_id"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Name      string `json:"name" validate:"required"`
	Recurring bool   `json:"recurring"`
}

type ExternalCountDTO struct {
	CompanyID string `json:"company_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Count     int    `json:"count"`
}

type PutExternalCountRequest struct {
	Year  int `json:"year" validate:"required,gte=2000,lte=2200"`
	Month int `json:"month" validate:"required,gte=1,lte=12"`
	Count int `json:"count" validate:"gte=0"`
}

// =============================================================================
// DTO CONVERSIONS
// =============================================================================

func toBreakdownDTO(b hours.HourBreakdown) BreakdownDTO {
	normal, _ := b.Normal.Float64()
	overtime, _ := b.Overtime.Float64()
	night, _ := b.Night.Float64()
	holiday, _ := b.Holiday.Float64()
	return BreakdownDTO{
		Normal:   normal,
		Overtime: overtime,
		Night:    night,
		Holiday:  holiday,
		Display:  schedule.FormatHours(b.Total()),
	}
}

func toSummaryDTO(s schedule.Summary) SummaryDTO {
	days := make([]DaySummaryDTO, len(s.Days))
	for i, day := range s.Days {
		debt, _ := day.DebtRemaining.Float64()
		paid, _ := day.PaidApplied.Float64()
		days[i] = DaySummaryDTO{
			Date:          day.Date.String(),
			Breakdown:     toBreakdownDTO(day.Breakdown),
			DebtRemaining: debt,
			PaidApplied:   paid,
			NegativeDay:   day.NegativeDay,
		}
	}

	normal, _ := s.Totals.Normal.Float64()
	overtime, _ := s.Totals.Overtime.Float64()
	night, _ := s.Totals.Night.Float64()
	holiday, _ := s.Totals.Holiday.Float64()
	debt, _ := s.Totals.Debt.Float64()
	paid, _ := s.Totals.Paid.Float64()

	return SummaryDTO{
		WorkerID:    s.WorkerID,
		PeriodStart: s.Period.Start.String(),
		PeriodEnd:   s.Period.End.String(),
		Days:        days,
		Totals: TotalsDTO{
			Normal:   normal,
			Overtime: overtime,
			Night:    night,
			Holiday:  holiday,
			Debt:     debt,
			Paid:     paid,
		},
	}
}

func toRowDTO(r schedule.Row) RowDTO {
	negative, _ := r.NegativeHours.Float64()
	paid, _ := r.PaidHours.Float64()
	return RowDTO{
		ID:             r.ID,
		WorkerID:       r.WorkerID,
		Date:           r.Date.String(),
		Start:          r.Start,
		End:            r.End,
		IsHoliday:      r.IsHoliday,
		IsVacation:     r.IsVacation,
		IsMedicalLeave: r.IsMedicalLeave,
		NegativeHours:  negative,
		IsNegativeDay:  r.IsNegativeDay,
		PaidHours:      paid,
		PaidHourType:   r.PaidHourType,
	}
}
