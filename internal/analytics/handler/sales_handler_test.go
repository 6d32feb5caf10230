package handler

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/analytics/service"
	"github.com/modaworks/vesti/internal/analytics/testutil"
)

func setupSalesRouter(t *testing.T) (*testutil.TestEnv, *SalesHandler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	cache := service.NewCache(nil, 0, zap.NewNop())
	salesSvc := service.NewSalesService(repos.Sales, cache)
	h := NewSalesHandler(salesSvc)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")
	api.POST("/sales", h.Create)
	api.GET("/sales", h.List)
	api.GET("/sales/:id", h.Get)
	api.PUT("/sales/:id", h.Update)
	api.DELETE("/sales/:id", h.Delete)
	api.DELETE("/sales", h.DeleteAll)

	return &testutil.TestEnv{DB: db, Router: r, T: t}, h
}

func TestSalesCRUD(t *testing.T) {
	env, _ := setupSalesRouter(t)
	token := testutil.DefaultTestToken()

	// 생성
	createBody := map[string]interface{}{
		"style_code":    "STMKT00125S",
		"color":         "블랙",
		"price":         59000,
		"manufacturing": "sweater",
		"material_name": "램스울",
		"fit":           "오버핏",
		"length":        "레귤러",
		"quantity":      120,
		"revenue":       7080000,
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sales", createBody, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)
	if id == "" {
		t.Fatal("expected record id in response")
	}

	// 단건 조회
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/sales/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["style_code"] != "STMKT00125S" {
		t.Errorf("unexpected style_code: %v", data["style_code"])
	}

	// 수정
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/sales/"+id,
		map[string]interface{}{"quantity": 140}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["quantity"].(float64) != 140 {
		t.Errorf("expected quantity 140, got %v", data["quantity"])
	}

	// 목록
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/sales?page=1&page_size=10", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// 삭제
	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/sales/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/sales/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestSalesCreateValidation(t *testing.T) {
	env, _ := setupSalesRouter(t)
	token := testutil.DefaultTestToken()

	// 필수 필드 누락
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sales",
		map[string]interface{}{"color": "블랙"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing style_code, got %d", w.Code)
	}
}

func TestSalesDeleteAllRequiresConfirm(t *testing.T) {
	env, _ := setupSalesRouter(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/sales", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without confirm, got %d", w.Code)
	}
	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/sales?confirm=true", nil, token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with confirm, got %d", w.Code)
	}
}

func TestSalesRequiresAuth(t *testing.T) {
	env, _ := setupSalesRouter(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/sales", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}
