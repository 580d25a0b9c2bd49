package maternity

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *Store) {
	store := newTestStore()
	svc := NewService(store, nil)
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api/v1"))
	return e, store
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createProfileJSON() string {
	edd := testNow.AddDate(0, 0, 10*7).Format(time.RFC3339)
	return fmt.Sprintf(`{
		"name": "Amina Yusuf",
		"age": 28,
		"blood_type": "O+",
		"expected_delivery_date": %q,
		"medical_history": ["appendectomy 2019"],
		"emergency_contact": "+254700000000"
	}`, edd)
}

func TestHandler_CreateAndGetMother(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/mothers", createProfileJSON())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}

	var created MotherProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.RiskStatus != StatusNormal {
		t.Errorf("new profile risk status = %s", created.RiskStatus)
	}
	if created.CurrentStage != StageThirdTrimester {
		t.Errorf("stage = %s", created.CurrentStage)
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/v1/mothers/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	var got MotherProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Amina Yusuf" || got.ID != created.ID {
		t.Errorf("unexpected profile: %+v", got)
	}
}

func TestHandler_CreateMotherValidation(t *testing.T) {
	e, _ := newTestServer()

	body := `{"name": "", "age": 28, "expected_delivery_date": "2026-06-01T00:00:00Z", "emergency_contact": "x"}`
	rec := doJSON(e, http.MethodPost, "/api/v1/mothers", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty name: status %d, want 400", rec.Code)
	}
}

func TestHandler_GetMotherNotFound(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodGet, "/api/v1/mothers/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown mother: status %d, want 404", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/mothers/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status %d, want 400", rec.Code)
	}
}

func TestHandler_AddAndListHealthRecords(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/mothers", createProfileJSON())
	var p MotherProfile
	json.Unmarshal(rec.Body.Bytes(), &p)

	// Empty list before any record.
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/v1/mothers/%d/health-records", p.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %s", rec.Body.String())
	}

	body := `{"blood_pressure": "150/95", "weight": 65, "symptoms": ["severe headache"], "notes": "urgent"}`
	rec = doJSON(e, http.MethodPost, fmt.Sprintf("/api/v1/mothers/%d/health-records", p.ID), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add record: status %d, body %s", rec.Code, rec.Body.String())
	}
	var hr HealthRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &hr); err != nil {
		t.Fatal(err)
	}
	if hr.HealthStatus != StatusCritical {
		t.Errorf("record status = %s, want critical", hr.HealthStatus)
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/v1/mothers/%d/health-records", p.ID), "")
	var records []HealthRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}

	// Unknown mother 404s and does not create anything.
	rec = doJSON(e, http.MethodPost, "/api/v1/mothers/99/health-records", body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown mother: status %d, want 404", rec.Code)
	}
}

func TestHandler_CriticalAndHighRiskLists(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/mothers", createProfileJSON())
	var p MotherProfile
	json.Unmarshal(rec.Body.Bytes(), &p)

	body := `{"blood_pressure": "150/95", "weight": 65}`
	doJSON(e, http.MethodPost, fmt.Sprintf("/api/v1/mothers/%d/health-records", p.ID), body)

	for _, path := range []string{"/api/v1/critical-cases", "/api/v1/high-risk-profiles"} {
		rec = doJSON(e, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		var resp struct {
			Data  []MotherProfile `json:"data"`
			Total int             `json:"total"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].ID != p.ID {
			t.Errorf("%s: unexpected response %s", path, rec.Body.String())
		}
	}
}

func TestHandler_UpcomingAppointments(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/v1/mothers", createProfileJSON())
	var p MotherProfile
	json.Unmarshal(rec.Body.Bytes(), &p)

	at := testNow.AddDate(0, 0, 3).Format(time.RFC3339)
	body := fmt.Sprintf(`{"blood_pressure": "118/76", "weight": 65, "next_appointment": %q}`, at)
	doJSON(e, http.MethodPost, fmt.Sprintf("/api/v1/mothers/%d/health-records", p.ID), body)

	rec = doJSON(e, http.MethodGet, "/api/v1/appointments/upcoming?window_days=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("window 7: status %d", rec.Code)
	}
	var items []UpcomingAppointment
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].MotherID != p.ID {
		t.Errorf("window 7: got %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/appointments/upcoming?window_days=1", "")
	json.Unmarshal(rec.Body.Bytes(), &items)
	if rec.Code != http.StatusOK || len(items) != 0 {
		t.Errorf("window 1: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/appointments/upcoming?window_days=-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative window: status %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/appointments/upcoming?window_days=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed window: status %d, want 400", rec.Code)
	}
}
