/*
handlers.go - HTTP API handlers for the timesheet system

PURPOSE:
  Exposes the hours engine and schedule store via REST API. Handles HTTP
  request/response, JSON serialization, and delegates all hour math to
  the hours package - no classification logic lives here, so the API,
  any export surface, and the calendar views can never drift apart.

ENDPOINTS:
  Companies:
    GET    /api/companies                   List companies
    POST   /api/companies                   Create company
    GET    /api/companies/{id}              Get company
    GET    /api/companies/{id}/workers      List company workers
    GET    /api/companies/{id}/holidays     List holidays
    POST   /api/companies/{id}/holidays     Create holiday
    GET    /api/companies/{id}/external     External-worker counts
    PUT    /api/companies/{id}/external     Upsert external count

  Workers:
    POST   /api/workers                     Create worker
    GET    /api/workers/{id}                Get worker
    GET    /api/workers/{id}/rows           List schedule rows in range
    POST   /api/workers/{id}/rows           Create schedule row
    PUT    /api/workers/{id}/rows/{rowID}   Update schedule row
    DELETE /api/workers/{id}/rows/{rowID}   Delete schedule row
    GET    /api/workers/{id}/days/{date}    Single-day breakdown
    GET    /api/workers/{id}/summary        Period summary (month/year)

  Holidays:
    DELETE /api/holidays/{id}               Delete holiday

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate holiday)
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware. Token issuance and tenant access
  control are handled by the surrounding deployment.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/hours-engine/hours"
	"github.com/warp/hours-engine/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    schedule.Store
	validate *validator.Validate
}

// NewHandler creates a new handler with the given store.
func NewHandler(store schedule.Store) *Handler {
	return &Handler{
		Store:    store,
		validate: validator.New(),
	}
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation. Writes the error response itself and returns false on
// failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// =============================================================================
// COMPANY HANDLERS
// =============================================================================

// ListCompanies returns all companies.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Store.ListCompanies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list companies", err)
		return
	}

	dtos := make([]CompanyDTO, len(companies))
	for i, c := range companies {
		dtos[i] = CompanyDTO{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCompany creates a new company.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id := req.ID
	if id == "" {
		id = newID("company")
	}

	company := schedule.Company{ID: id, Name: req.Name}
	if err := h.Store.SaveCompany(r.Context(), company); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create company", err)
		return
	}

	writeJSON(w, http.StatusCreated, CompanyDTO{ID: company.ID, Name: company.Name})
}

// GetCompany returns a single company.
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	company, err := h.Store.GetCompany(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get company", err)
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "Company not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		CreatedAt: company.CreatedAt.Format(time.RFC3339),
	})
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListCompanyWorkers returns all workers of a company.
func (h *Handler) ListCompanyWorkers(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	workers, err := h.Store.ListWorkers(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workers", err)
		return
	}

	dtos := make([]WorkerDTO, len(workers))
	for i, worker := range workers {
		dtos[i] = toWorkerDTO(worker)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWorker creates a new worker.
func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	company, err := h.Store.GetCompany(r.Context(), req.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check company", err)
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "Company not found", schedule.ErrCompanyNotFound)
		return
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate) // validated above

	id := req.ID
	if id == "" {
		id = newID("worker")
	}

	worker := schedule.Worker{
		ID:        id,
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		HireDate:  hireDate,
	}
	if err := h.Store.SaveWorker(r.Context(), worker); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create worker", err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkerDTO(worker))
}

// GetWorker returns a single worker.
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDTO(*worker))
}

// loadWorker fetches the worker named in the URL, writing the error
// response on failure.
func (h *Handler) loadWorker(w http.ResponseWriter, r *http.Request) (*schedule.Worker, bool) {
	id := chi.URLParam(r, "id")

	worker, err := h.Store.GetWorker(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get worker", err)
		return nil, false
	}
	if worker == nil {
		writeError(w, http.StatusNotFound, "Worker not found", nil)
		return nil, false
	}
	return worker, true
}

func toWorkerDTO(w schedule.Worker) WorkerDTO {
	return WorkerDTO{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Email:     w.Email,
		HireDate:  w.HireDate.Format("2006-01-02"),
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// SCHEDULE ROW HANDLERS
// =============================================================================

// ListRows returns a worker's schedule rows in a date range.
// Query params: from, to (YYYY-MM-DD), both required so callers are
// explicit about what they fetch.
func (h *Handler) ListRows(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}

	from, okFrom := hours.ParseDate(r.URL.Query().Get("from"))
	to, okTo := hours.ParseDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		writeError(w, http.StatusBadRequest, "Invalid or missing from/to (use YYYY-MM-DD)", nil)
		return
	}

	rows, err := h.Store.RowsInRange(r.Context(), worker.ID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rows", err)
		return
	}

	dtos := make([]RowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toRowDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRow adds a schedule row for a worker.
func (h *Handler) CreateRow(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}

	var req SaveRowRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	row, ok := h.rowFromRequest(w, worker.ID, newID("row"), req)
	if !ok {
		return
	}
	if err := h.Store.SaveRow(r.Context(), row); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save row", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRowDTO(row))
}

// UpdateRow replaces an existing schedule row.
func (h *Handler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}
	rowID := chi.URLParam(r, "rowID")

	existing, err := h.Store.GetRow(r.Context(), rowID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get row", err)
		return
	}
	if existing == nil || existing.WorkerID != worker.ID {
		writeError(w, http.StatusNotFound, "Schedule row not found", nil)
		return
	}

	var req SaveRowRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	row, ok := h.rowFromRequest(w, worker.ID, rowID, req)
	if !ok {
		return
	}
	row.CreatedAt = existing.CreatedAt
	if err := h.Store.SaveRow(r.Context(), row); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save row", err)
		return
	}
	writeJSON(w, http.StatusOK, toRowDTO(row))
}

// DeleteRow removes a schedule row.
func (h *Handler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}
	rowID := chi.URLParam(r, "rowID")

	existing, err := h.Store.GetRow(r.Context(), rowID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get row", err)
		return
	}
	if existing == nil || existing.WorkerID != worker.ID {
		writeError(w, http.StatusNotFound, "Schedule row not found", nil)
		return
	}

	if err := h.Store.DeleteRow(r.Context(), rowID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete row", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rowFromRequest(w http.ResponseWriter, workerID, rowID string, req SaveRowRequest) (schedule.Row, bool) {
	date, ok := hours.ParseDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", nil)
		return schedule.Row{}, false
	}
	return schedule.Row{
		ID:             rowID,
		WorkerID:       workerID,
		Date:           date,
		Start:          req.Start,
		End:            req.End,
		IsHoliday:      req.IsHoliday,
		IsVacation:     req.IsVacation,
		IsMedicalLeave: req.IsMedicalLeave,
		NegativeHours:  decimal.NewFromFloat(req.NegativeHours),
		IsNegativeDay:  req.IsNegativeDay,
		PaidHours:      decimal.NewFromFloat(req.PaidHours),
		PaidHourType:   req.PaidHourType,
	}, true
}

// =============================================================================
// REPORTING HANDLERS
// =============================================================================

// GetDayBreakdown returns the classification for a single day -
// consumed by calendar cell views.
func (h *Handler) GetDayBreakdown(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}

	date, ok := hours.ParseDate(chi.URLParam(r, "date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", nil)
		return
	}

	rows, err := h.Store.RowsInRange(r.Context(), worker.ID, date, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rows", err)
		return
	}

	calendar, err := h.companyCalendar(r, worker.CompanyID, date.Year())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}

	breakdown := schedule.DayBreakdown(rows, calendar, worker.CompanyID, date)
	writeJSON(w, http.StatusOK, toBreakdownDTO(breakdown))
}

// GetSummary returns the aggregated totals and per-day results for a
// worker. Query params: year (required), month (optional; whole year
// as one pass when omitted, so overtime carry spans months).
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	worker, ok := h.loadWorker(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		writeError(w, http.StatusBadRequest, "Invalid or missing year", nil)
		return
	}

	period := hours.YearRange(year)
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month", nil)
			return
		}
		period = hours.MonthRange(year, time.Month(month))
	}

	rows, err := h.Store.RowsInRange(r.Context(), worker.ID, period.Start, period.End)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rows", err)
		return
	}

	calendar, err := h.companyCalendar(r, worker.CompanyID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}

	summary := schedule.BuildSummary(worker.ID, rows, calendar, worker.CompanyID, period)
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

func (h *Handler) companyCalendar(r *http.Request, companyID string, year int) (schedule.HolidayCalendar, error) {
	holidays, err := h.Store.ListHolidays(r.Context(), companyID, year)
	if err != nil {
		return nil, err
	}
	return schedule.NewCalendar(holidays), nil
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns a company's holidays, optionally filtered by year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	holidays, err := h.Store.ListHolidays(r.Context(), companyID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, holiday := range holidays {
		dtos[i] = HolidayDTO{
			ID:        holiday.ID,
			CompanyID: holiday.CompanyID,
			Date:      holiday.Date.String(),
			Name:      holiday.Name,
			Recurring: holiday.Recurring,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a holiday for a company.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	var req CreateHolidayRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	date, _ := hours.ParseDate(req.Date) // validated above

	holiday := schedule.Holiday{
		ID:        newID("holiday"),
		CompanyID: companyID,
		Date:      date,
		Name:      req.Name,
		Recurring: req.Recurring,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		if err == schedule.ErrDuplicateID {
			writeError(w, http.StatusConflict, "Holiday already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}

	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID:        holiday.ID,
		CompanyID: holiday.CompanyID,
		Date:      holiday.Date.String(),
		Name:      holiday.Name,
		Recurring: holiday.Recurring,
	})
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		if schedule.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Holiday not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EXTERNAL-WORKER COUNT HANDLERS
// =============================================================================

// ListExternalCounts returns external headcounts for a company.
func (h *Handler) ListExternalCounts(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	counts, err := h.Store.ListExternalCounts(r.Context(), companyID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list external counts", err)
		return
	}

	dtos := make([]ExternalCountDTO, len(counts))
	for i, c := range counts {
		dtos[i] = ExternalCountDTO{
			CompanyID: c.CompanyID,
			Year:      c.Year,
			Month:     int(c.Month),
			Count:     c.Count,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// PutExternalCount upserts a company's external headcount for a month.
func (h *Handler) PutExternalCount(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	var req PutExternalCountRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	count := schedule.ExternalCount{
		ID:        newID("ext"),
		CompanyID: companyID,
		Year:      req.Year,
		Month:     time.Month(req.Month),
		Count:     req.Count,
	}
	if err := h.Store.PutExternalCount(r.Context(), count); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save external count", err)
		return
	}

	writeJSON(w, http.StatusOK, ExternalCountDTO{
		CompanyID: count.CompanyID,
		Year:      count.Year,
		Month:     int(count.Month),
		Count:     count.Count,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
