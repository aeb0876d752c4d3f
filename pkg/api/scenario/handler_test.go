package scenario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mortgage_engine/pkg/core/store"
	"mortgage_engine/pkg/models"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(store.NewScenarioStore(nil, t.TempDir()))
}

func TestHandleSaveAndGet(t *testing.T) {
	handler := newTestHandler(t)

	body := []byte(`{
		"label": "Dream house",
		"inputs": {"home_price": 750000, "down_payment_percent": 15, "term_years": 30}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/scenario/save", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleSave(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", w.Code)
	}

	var saved models.Scenario
	if err := json.NewDecoder(w.Body).Decode(&saved); err != nil {
		t.Fatalf("bad save response: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected assigned ID")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/scenario/get?id="+saved.ID, nil)
	getW := httptest.NewRecorder()
	handler.HandleGet(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", getW.Code)
	}

	var loaded models.Scenario
	json.NewDecoder(getW.Body).Decode(&loaded)
	if loaded.Label != "Dream house" || loaded.Inputs.HomePrice != 750000 {
		t.Errorf("loaded scenario wrong: %+v", loaded)
	}
}

func TestHandleSave_MissingLabel(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/scenario/save",
		bytes.NewBuffer([]byte(`{"inputs": {"home_price": 1, "term_years": 30}}`)))
	w := httptest.NewRecorder()
	handler.HandleSave(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scenario/get?id=missing", nil)
	w := httptest.NewRecorder()
	handler.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHandleList(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scenario/list", nil)
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body == "null\n" {
		t.Error("empty list should encode as [], not null")
	}
}

func TestHandleDelete(t *testing.T) {
	handler := newTestHandler(t)

	saveReq := httptest.NewRequest(http.MethodPost, "/api/scenario/save",
		bytes.NewBuffer([]byte(`{"label": "Short lived", "inputs": {"home_price": 1, "term_years": 30}}`)))
	saveW := httptest.NewRecorder()
	handler.HandleSave(saveW, saveReq)

	var saved models.Scenario
	json.NewDecoder(saveW.Body).Decode(&saved)

	delReq := httptest.NewRequest(http.MethodPost, "/api/scenario/delete?id="+saved.ID, nil)
	delW := httptest.NewRecorder()
	handler.HandleDelete(delW, delReq)

	if delW.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", delW.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/scenario/get?id="+saved.ID, nil)
	getW := httptest.NewRecorder()
	handler.HandleGet(getW, getReq)

	if getW.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", getW.Code)
	}
}

func TestHandleImport_RepairsSloppyJSON(t *testing.T) {
	handler := newTestHandler(t)

	// Single quotes and a trailing comma: the repair ladder should recover it
	body := []byte(`{'label': 'Pasted from chat', 'inputs': {'home_price': 420000, 'term_years': 30,},}`)

	req := httptest.NewRequest(http.MethodPost, "/api/scenario/import", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.HandleImport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var imported models.Scenario
	json.NewDecoder(w.Body).Decode(&imported)
	if imported.Label != "Pasted from chat" {
		t.Errorf("label wrong: %q", imported.Label)
	}
	if imported.Inputs.HomePrice != 420000 {
		t.Errorf("inputs wrong: %+v", imported.Inputs)
	}
	if imported.ID == "" {
		t.Error("import should assign a fresh ID")
	}
}

func TestHandleImport_Hopeless(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/scenario/import",
		bytes.NewBuffer([]byte("not even close to a scenario")))
	w := httptest.NewRecorder()
	handler.HandleImport(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}
