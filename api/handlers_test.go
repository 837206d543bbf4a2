package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-engine/hours"
	"github.com/warp/hours-engine/schedule"
	memstore "github.com/warp/hours-engine/schedule/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *memstore.Memory) {
	t.Helper()
	store := memstore.NewMemory()
	handler := NewHandler(store)
	server := httptest.NewServer(NewRouter(handler, []string{"*"}))
	t.Cleanup(server.Close)
	return server, store
}

func seedWorker(t *testing.T, store *memstore.Memory) schedule.Worker {
	t.Helper()
	ctx := context.Background()
	if err := store.SaveCompany(ctx, schedule.Company{ID: "acme", Name: "Acme"}); err != nil {
		t.Fatal(err)
	}
	worker := schedule.Worker{
		ID:        "w-1",
		CompanyID: "acme",
		Name:      "Ada",
		HireDate:  time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.SaveWorker(ctx, worker); err != nil {
		t.Fatal(err)
	}
	return worker
}

func seedRow(t *testing.T, store *memstore.Memory, id string, day int, start, end string) {
	t.Helper()
	err := store.SaveRow(context.Background(), schedule.Row{
		ID:       id,
		WorkerID: "w-1",
		Date:     hours.NewDate(2025, time.March, day),
		Start:    start,
		End:      end,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

// =============================================================================
// COMPANY AND WORKER ENDPOINTS
// =============================================================================

func TestCreateCompany_AndList(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/companies", CreateCompanyRequest{Name: "Acme"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody[CompanyDTO](t, resp)
	if created.ID == "" || created.Name != "Acme" {
		t.Errorf("unexpected company: %+v", created)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/companies", nil)
	companies := decodeBody[[]CompanyDTO](t, resp)
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
}

func TestCreateCompany_MissingNameRejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/companies", CreateCompanyRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateWorker_UnknownCompanyIs404(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/workers", CreateWorkerRequest{
		CompanyID: "ghost",
		Name:      "Ada",
		HireDate:  "2020-01-01",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateWorker_BadHireDateRejected(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/workers", CreateWorkerRequest{
		CompanyID: "acme",
		Name:      "Bob",
		HireDate:  "01/02/2020",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// =============================================================================
// SCHEDULE ROW ENDPOINTS
// =============================================================================

func TestCreateRow_AndListInRange(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/workers/w-1/rows", SaveRowRequest{
		Date:  "2025-03-10",
		Start: "09:00",
		End:   "17:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet,
		server.URL+"/api/workers/w-1/rows?from=2025-03-01&to=2025-03-31", nil)
	rows := decodeBody[[]RowDTO](t, resp)
	if len(rows) != 1 || rows[0].Date != "2025-03-10" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestCreateRow_NegativePaidHoursRejected(t *testing.T) {
	// Callers must clamp negative amounts before they reach the engine.
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/workers/w-1/rows", SaveRowRequest{
		Date:      "2025-03-10",
		PaidHours: -2,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateRow_BadPaidHourTypeRejected(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/workers/w-1/rows", SaveRowRequest{
		Date:         "2025-03-10",
		PaidHourType: "weekend",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateRow_OtherWorkersRowIs404(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)
	if err := store.SaveWorker(context.Background(), schedule.Worker{ID: "w-2", CompanyID: "acme", Name: "Eve"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRow(context.Background(), schedule.Row{
		ID: "r-other", WorkerID: "w-2",
		Date: hours.NewDate(2025, time.March, 10),
	}); err != nil {
		t.Fatal(err)
	}

	resp := doJSON(t, http.MethodPut, server.URL+"/api/workers/w-1/rows/r-other", SaveRowRequest{
		Date: "2025-03-10",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteRow(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)
	seedRow(t, store, "r-1", 10, "09:00", "17:00")

	resp := doJSON(t, http.MethodDelete, server.URL+"/api/workers/w-1/rows/r-1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	rows, err := store.RowsInRange(context.Background(), "w-1",
		hours.NewDate(2025, time.March, 1), hours.NewDate(2025, time.March, 31))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected row deleted, found %d", len(rows))
	}
}

// =============================================================================
// REPORTING ENDPOINTS
// =============================================================================

func TestGetDayBreakdown(t *testing.T) {
	// GIVEN: A regular Monday 09:00-17:30
	// THEN: 8h normal, 0.5h overtime in the response

	server, store := newTestServer(t)
	seedWorker(t, store)
	seedRow(t, store, "r-1", 10, "09:00", "17:30")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/workers/w-1/days/2025-03-10", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	got := decodeBody[BreakdownDTO](t, resp)
	if got.Normal != 8 || got.Overtime != 0.5 {
		t.Errorf("unexpected breakdown: %+v", got)
	}
	if got.Display != "08:30" {
		t.Errorf("expected display 08:30, got %q", got.Display)
	}
}

func TestGetDayBreakdown_CompanyHolidayApplies(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)
	seedRow(t, store, "r-1", 10, "09:00", "17:00")
	if err := store.SaveHoliday(context.Background(), schedule.Holiday{
		ID: "h-1", CompanyID: "acme",
		Date: hours.NewDate(2025, time.March, 10), Name: "Founders Day",
	}); err != nil {
		t.Fatal(err)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/workers/w-1/days/2025-03-10", nil)
	got := decodeBody[BreakdownDTO](t, resp)
	if got.Holiday != 8 || got.Normal != 0 {
		t.Errorf("expected 8h holiday via company calendar, got %+v", got)
	}
}

func TestGetSummary_MonthWithDebtCarry(t *testing.T) {
	// GIVEN: Monday banks 2h overtime; Tuesday carries a 3h debt
	// THEN: The summary reports exhausted overtime and 1h debt

	server, store := newTestServer(t)
	seedWorker(t, store)
	seedRow(t, store, "r-1", 10, "09:00", "19:00")
	if err := store.SaveRow(context.Background(), schedule.Row{
		ID: "r-2", WorkerID: "w-1",
		Date:  hours.NewDate(2025, time.March, 11),
		Start: "09:00", End: "17:00",
		NegativeHours: decimal.NewFromInt(3),
	}); err != nil {
		t.Fatal(err)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/workers/w-1/summary?year=2025&month=3", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	got := decodeBody[SummaryDTO](t, resp)

	if got.Totals.Normal != 16 {
		t.Errorf("expected 16h normal, got %v", got.Totals.Normal)
	}
	if got.Totals.Overtime != 0 {
		t.Errorf("expected exhausted overtime carry, got %v", got.Totals.Overtime)
	}
	if got.Totals.Debt != 1 {
		t.Errorf("expected 1h unresolved debt, got %v", got.Totals.Debt)
	}
	if len(got.Days) != 2 {
		t.Errorf("expected 2 day results, got %d", len(got.Days))
	}
}

func TestGetSummary_MissingYearRejected(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/workers/w-1/summary", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// =============================================================================
// HOLIDAY AND EXTERNAL-COUNT ENDPOINTS
// =============================================================================

func TestHolidayLifecycle(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/companies/acme/holidays", CreateHolidayRequest{
		Date: "2025-12-25",
		Name: "Christmas Day",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody[HolidayDTO](t, resp)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/companies/acme/holidays?year=2025", nil)
	holidays := decodeBody[[]HolidayDTO](t, resp)
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(holidays))
	}

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/holidays/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestExternalCounts_UpsertAndList(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	for _, count := range []int{5, 7} { // second put overwrites the first
		resp := doJSON(t, http.MethodPut, server.URL+"/api/companies/acme/external", PutExternalCountRequest{
			Year: 2025, Month: 3, Count: count,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/companies/acme/external?year=2025", nil)
	counts := decodeBody[[]ExternalCountDTO](t, resp)
	if len(counts) != 1 {
		t.Fatalf("expected 1 count after upsert, got %d", len(counts))
	}
	if counts[0].Count != 7 {
		t.Errorf("expected latest count 7, got %d", counts[0].Count)
	}
}

func TestExternalCounts_InvalidMonthRejected(t *testing.T) {
	server, store := newTestServer(t)
	seedWorker(t, store)

	resp := doJSON(t, http.MethodPut, server.URL+"/api/companies/acme/external", PutExternalCountRequest{
		Year: 2025, Month: 13, Count: 1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// Sanity check that errors come back in the uniform JSON shape.
func TestErrorResponseShape(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/workers/ghost", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body := decodeBody[ErrorResponse](t, resp)
	if body.Error == "" {
		t.Error("expected error message in body")
	}
}
