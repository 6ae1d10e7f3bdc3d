package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.PanelEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventTargetChange, Description: "target 71"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventTargetPushed, Description: "pushed 71"},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{EventLog: logs, Monitoring: &mockMonitoring{}})

	// Invalid 'from' → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=notatime", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}
	if logs.calls != 0 {
		t.Fatalf("service must not be called on bad input")
	}

	// Valid range and type
	w = httptest.NewRecorder()
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=target_pushed"
	req = httptest.NewRequest(http.MethodGet, q, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                 `json:"count"`
		Events []models.PanelEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.filter.Type != "target_pushed" {
		t.Fatalf("expected type passed through, got %q", logs.filter.Type)
	}
	if !logs.filter.From.Equal(now) || !logs.filter.To.Equal(now.Add(2*time.Second)) {
		t.Fatalf("unexpected range: %+v", logs.filter)
	}
}

func TestLogsHandler_DateOnlyToCoversWholeDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs, Monitoring: &mockMonitoring{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2025-08-01&to=2025-08-01", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := time.Date(2025, 8, 1, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !logs.filter.To.Equal(want) {
		t.Fatalf("to=%v, want %v", logs.filter.To, want)
	}
}

func TestLogsHandler_InvertedRangeAndServiceError(t *testing.T) {
	logs := &mockEventLog{err: errors.New("boom")}
	r := newTestRouter(&service.Service{EventLog: logs, Monitoring: &mockMonitoring{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2025-08-02&to=2025-08-01", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on service error, got %d", w.Code)
	}
}
