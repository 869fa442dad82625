package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fabsheet/testhelpers"
)

func TestHandleMeasurementList_SortedByOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "List Project")
	testhelpers.CreateTestMeasurement(t, app, proj.Id, 2, "W-102", 900, 500, "normal")
	testhelpers.CreateTestMeasurement(t, app, proj.Id, 1, "W-101", 1000, 600, "normal")
	handler := HandleMeasurementList(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/projects/%s/measurements", proj.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	first := strings.Index(body, "W-101")
	second := strings.Index(body, "W-102")
	if first < 0 || second < 0 {
		t.Fatalf("expected both serials in response, got %q", body)
	}
	if first > second {
		t.Error("expected W-101 before W-102 (sort_order order)")
	}
}

func TestHandleMeasurementList_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMeasurementList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/projects/missing/measurements", nil)
	req.SetPathValue("projectId", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleMeasurementAdd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Add Project")
	handler := HandleMeasurementAdd(app)
	body := `{"serial":"W-201","height_mm":"1000","width_mm":"600","category":"Normal"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/projects/%s/measurements", proj.Id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	records, err := app.FindRecordsByFilter("measurements", "serial = 'W-201'", "", 0, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 stored measurement, got %d (err %v)", len(records), err)
	}
	if got := records[0].GetInt("height_mm"); got != 1000 {
		t.Errorf("height_mm = %d, want 1000", got)
	}
	if got := records[0].GetString("category"); got != "normal" {
		t.Errorf("category = %q, want %q", got, "normal")
	}
	if got := records[0].GetInt("sort_order"); got != 1 {
		t.Errorf("sort_order = %d, want 1", got)
	}
}

func TestHandleMeasurementAdd_NoisyInputCoerced(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Noisy Project")
	handler := HandleMeasurementAdd(app)
	body := `{"serial":"W-202","height_mm":"abc","width_mm":"","category":"Balcony"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/projects/%s/measurements", proj.Id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	respBody := rec.Body.String()
	if !strings.Contains(respBody, `"height_defaulted":true`) {
		t.Errorf("expected height_defaulted flag in response, got %q", respBody)
	}
	if !strings.Contains(respBody, `"category_defaulted":true`) {
		t.Errorf("expected category_defaulted flag in response, got %q", respBody)
	}
	records, err := app.FindRecordsByFilter("measurements", "serial = 'W-202'", "", 0, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 stored measurement, got %d (err %v)", len(records), err)
	}
	if got := records[0].GetInt("height_mm"); got != 0 {
		t.Errorf("height_mm = %d, want 0 (coerced)", got)
	}
	if got := records[0].GetString("category"); got != "normal" {
		t.Errorf("category = %q, want %q (unknown label defaults)", got, "normal")
	}
}

func TestHandleMeasurementAdd_AppendsSortOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Order Project")
	testhelpers.CreateTestMeasurement(t, app, proj.Id, 5, "W-105", 800, 400, "louver")
	handler := HandleMeasurementAdd(app)
	body := `{"serial":"W-106","height_mm":"700","width_mm":"350","category":"fix"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/projects/%s/measurements", proj.Id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	records, err := app.FindRecordsByFilter("measurements", "serial = 'W-106'", "", 0, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 stored measurement, got %d (err %v)", len(records), err)
	}
	if got := records[0].GetInt("sort_order"); got != 6 {
		t.Errorf("sort_order = %d, want 6", got)
	}
}

func TestHandleMeasurementUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Update Project")
	m := testhelpers.CreateTestMeasurement(t, app, proj.Id, 1, "W-101", 1000, 600, "normal")
	handler := HandleMeasurementUpdate(app)
	body := `{"serial":"W-101","height_mm":"1200","width_mm":"650","category":"kitchen"}`
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/measurements/%s", m.Id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("measurementId", m.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	updated, err := app.FindRecordById("measurements", m.Id)
	if err != nil {
		t.Fatalf("find updated measurement: %v", err)
	}
	if got := updated.GetInt("height_mm"); got != 1200 {
		t.Errorf("height_mm = %d, want 1200", got)
	}
	if got := updated.GetString("category"); got != "kitchen" {
		t.Errorf("category = %q, want %q", got, "kitchen")
	}
}

func TestHandleMeasurementReorder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Reorder Project")
	m1 := testhelpers.CreateTestMeasurement(t, app, proj.Id, 1, "W-101", 1000, 600, "normal")
	m2 := testhelpers.CreateTestMeasurement(t, app, proj.Id, 2, "W-102", 900, 500, "normal")
	m3 := testhelpers.CreateTestMeasurement(t, app, proj.Id, 3, "W-103", 800, 400, "louver")
	handler := HandleMeasurementReorder(app)
	body := fmt.Sprintf(`{"ids":["%s","%s","%s"]}`, m3.Id, m1.Id, m2.Id)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/projects/%s/measurements/reorder", proj.Id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	ordered, err := app.FindRecordsByFilter("measurements", "project = {:p}", "sort_order", 0, 0,
		map[string]any{"p": proj.Id})
	if err != nil {
		t.Fatalf("query measurements: %v", err)
	}
	want := []string{"W-103", "W-101", "W-102"}
	for i, w := range want {
		if got := ordered[i].GetString("serial"); got != w {
			t.Errorf("position %d = %q, want %q", i, got, w)
		}
	}
}

func TestHandleMeasurementReorder_ForeignID(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Reorder Own")
	other := testhelpers.CreateTestProject(t, app, "Reorder Other")
	testhelpers.CreateTestMeasurement(t, app, proj.Id, 1, "W-101", 1000, 600, "normal")
	foreign := testhelpers.CreateTestMeasurement(t, app, other.Id, 1, "X-1", 700, 300, "fix")
	handler := HandleMeasurementReorder(app)
	body := fmt.Sprintf(`{"ids":["%s"]}`, foreign.Id)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/projects/%s/measurements/reorder", proj.Id), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleMeasurementDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Delete Project")
	m := testhelpers.CreateTestMeasurement(t, app, proj.Id, 1, "W-101", 1000, 600, "normal")
	handler := HandleMeasurementDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/measurements/%s", m.Id), nil)
	req.SetPathValue("measurementId", m.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("measurements", m.Id); err == nil {
		t.Error("measurement should be deleted")
	}
}

func TestHandleMeasurementDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMeasurementDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/measurements/missing", nil)
	req.SetPathValue("measurementId", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
