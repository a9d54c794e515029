package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
	"github.com/gin-gonic/gin"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := utils.NewJWTManager("router-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	svc := NewServices(Options{Tokens: tokens, PhoneCountryCode: "57"})
	if err := svc.Auth.EnsureAdmin("admin", "admin-password"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	engine := gin.New()
	Setup(engine, svc, tokens)
	return &testServer{t: t, engine: engine}
}

// do sends a JSON request and decodes a JSON response into out when out is not nil.
func (s *testServer) do(method, path, token string, body interface{}, out interface{}) int {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			s.t.Fatalf("%s %s: decode response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if code := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password}, &resp); code != http.StatusOK {
		s.t.Fatalf("login(%s) status = %d", username, code)
	}
	return resp.AccessToken
}

type idResponse struct {
	ID string `json:"id"`
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)

	if code := s.do(http.MethodGet, "/api/v1/menu", "", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", code)
	}
	if code := s.do(http.MethodGet, "/api/v1/menu", "garbage", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", code)
	}
	if code := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "nope-nope"}, nil); code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", code)
	}

	admin := s.login("admin", "admin-password")
	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if code := s.do(http.MethodGet, "/api/v1/auth/me", admin, nil, &me); code != http.StatusOK || me.Role != "admin" {
		t.Errorf("me = %+v, status %d", me, code)
	}

	if code := s.do(http.MethodPost, "/api/v1/auth/register", admin, map[string]string{"username": "maria", "password": "waiter-pass"}, nil); code != http.StatusCreated {
		t.Fatalf("register status = %d", code)
	}
	if code := s.do(http.MethodPost, "/api/v1/auth/register", admin, map[string]string{"username": "MARIA", "password": "waiter-pass"}, nil); code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", code)
	}

	waiter := s.login("maria", "waiter-pass")
	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"waiter reads menu", http.MethodGet, "/api/v1/menu", nil, http.StatusOK},
		{"waiter reads dashboard", http.MethodGet, "/api/v1/sales/dashboard", nil, http.StatusOK},
		{"waiter cannot list sales", http.MethodGet, "/api/v1/sales", nil, http.StatusForbidden},
		{"waiter cannot add inventory", http.MethodPost, "/api/v1/inventory", map[string]interface{}{"name": "Oil", "unit": "L"}, http.StatusForbidden},
		{"waiter cannot register users", http.MethodPost, "/api/v1/auth/register", map[string]string{"username": "x", "password": "xxxxxxxx"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := s.do(tt.method, tt.path, waiter, tt.body, nil); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestDineInSaleFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin-password")

	var chicken idResponse
	if code := s.do(http.MethodPost, "/api/v1/inventory", admin, map[string]interface{}{
		"name": "Chicken wings", "stock": 1000, "unit": "g", "alert_threshold": 100,
	}, &chicken); code != http.StatusCreated {
		t.Fatalf("create inventory status = %d", code)
	}

	var wings idResponse
	if code := s.do(http.MethodPost, "/api/v1/menu", admin, map[string]interface{}{
		"name": "Alitas", "price": 18500, "category": "Alitas", "has_wings": true,
		"recipe": []map[string]interface{}{{"inventory_item_id": chicken.ID, "quantity": 200}},
	}, &wings); code != http.StatusCreated {
		t.Fatalf("create menu item status = %d", code)
	}

	var table idResponse
	if code := s.do(http.MethodPost, "/api/v1/tables", admin, map[string]interface{}{"name": "T1", "capacity": 4}, &table); code != http.StatusCreated {
		t.Fatalf("create table status = %d", code)
	}

	orderReq := map[string]interface{}{
		"order_type":  "dine-in",
		"destination": map[string]interface{}{"table_id": table.ID},
		"items":       []map[string]interface{}{{"menu_item_id": wings.ID, "quantity": 2}},
	}
	var order idResponse
	if code := s.do(http.MethodPost, "/api/v1/orders", admin, orderReq, &order); code != http.StatusCreated {
		t.Fatalf("create order status = %d", code)
	}
	if code := s.do(http.MethodPost, "/api/v1/orders", admin, orderReq, nil); code != http.StatusConflict {
		t.Errorf("second order on occupied table status = %d, want 409", code)
	}
	if code := s.do(http.MethodDelete, "/api/v1/tables/"+table.ID, admin, nil, nil); code != http.StatusConflict {
		t.Errorf("delete occupied table status = %d, want 409", code)
	}

	var kitchen []json.RawMessage
	if code := s.do(http.MethodGet, "/api/v1/orders/kitchen", admin, nil, &kitchen); code != http.StatusOK || len(kitchen) != 1 {
		t.Errorf("kitchen queue = %d tickets, status %d", len(kitchen), code)
	}

	var sale struct {
		ID            string `json:"id"`
		Total         string `json:"total"`
		PaymentMethod string `json:"payment_method"`
	}
	completePath := "/api/v1/orders/" + order.ID + "/complete"
	if code := s.do(http.MethodPost, completePath, admin, map[string]string{"payment_method": "Cash"}, &sale); code != http.StatusCreated {
		t.Fatalf("complete status = %d", code)
	}
	if sale.Total != "37000" || sale.PaymentMethod != "Cash" {
		t.Errorf("sale = %+v", sale)
	}
	if code := s.do(http.MethodPost, completePath, admin, map[string]string{"payment_method": "Cash"}, nil); code != http.StatusNotFound {
		t.Errorf("second complete status = %d, want 404", code)
	}

	var stock struct {
		Stock float64 `json:"stock"`
	}
	s.do(http.MethodGet, "/api/v1/inventory/"+chicken.ID, admin, nil, &stock)
	if stock.Stock != 600 {
		t.Errorf("stock after sale = %v, want 600", stock.Stock)
	}

	var tableState struct {
		Status string `json:"status"`
	}
	s.do(http.MethodGet, "/api/v1/tables/"+table.ID, admin, nil, &tableState)
	if tableState.Status != "available" {
		t.Errorf("table status = %s, want available", tableState.Status)
	}

	var report struct {
		TotalOrders  int    `json:"total_orders"`
		TotalRevenue string `json:"total_revenue"`
	}
	if code := s.do(http.MethodGet, "/api/v1/sales/report?period=today", admin, nil, &report); code != http.StatusOK {
		t.Fatalf("report status = %d", code)
	}
	if report.TotalOrders != 1 || report.TotalRevenue != "37000" {
		t.Errorf("report = %+v", report)
	}
	if code := s.do(http.MethodGet, "/api/v1/sales/report?period=fortnight", admin, nil, nil); code != http.StatusBadRequest {
		t.Errorf("bad period status = %d, want 400", code)
	}

	if code := s.do(http.MethodPost, "/api/v1/inventory/"+chicken.ID+"/adjust", admin, map[string]interface{}{"mode": "set", "value": -5}, &stock); code != http.StatusOK {
		t.Fatalf("adjust status = %d", code)
	}
	if stock.Stock != 0 {
		t.Errorf("stock after set -5 = %v, want 0", stock.Stock)
	}

	if code := s.do(http.MethodDelete, "/api/v1/tables/"+table.ID, admin, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete free table status = %d, want 204", code)
	}
}

func TestDraftFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin-password")

	var shake idResponse
	s.do(http.MethodPost, "/api/v1/menu", admin, map[string]interface{}{"name": "Malteada", "price": 11000, "max_choices": 2}, &shake)

	var draft struct {
		ID    string `json:"id"`
		Items []struct {
			InstanceID string `json:"instance_id"`
		} `json:"items"`
	}
	if code := s.do(http.MethodPost, "/api/v1/drafts", admin, map[string]string{"order_type": "to-go"}, &draft); code != http.StatusCreated {
		t.Fatalf("create draft status = %d", code)
	}
	base := "/api/v1/drafts/" + draft.ID
	if code := s.do(http.MethodPost, base+"/items", admin, map[string]string{"menu_item_id": shake.ID}, &draft); code != http.StatusOK || len(draft.Items) != 1 {
		t.Fatalf("add item status = %d, items = %d", code, len(draft.Items))
	}
	item := base + "/items/" + draft.Items[0].InstanceID

	if code := s.do(http.MethodPut, item+"/flavors/0", admin, map[string]string{"flavor": "Vanilla"}, nil); code != http.StatusOK {
		t.Errorf("set flavor status = %d", code)
	}
	if code := s.do(http.MethodPut, item+"/flavors/five", admin, map[string]string{"flavor": "Vanilla"}, nil); code != http.StatusBadRequest {
		t.Errorf("non numeric slot status = %d, want 400", code)
	}
	tooMany := map[string]interface{}{"flavors": []string{"Vanilla", "Chocolate", "Mango"}}
	if code := s.do(http.MethodPut, item+"/customization", admin, tooMany, nil); code != http.StatusBadRequest {
		t.Errorf("three flavors on a two slot item status = %d, want 400", code)
	}

	var suggestions struct {
		Suggestions []string `json:"suggestions"`
	}
	if code := s.do(http.MethodGet, base+"/suggestions", admin, nil, &suggestions); code != http.StatusOK || suggestions.Suggestions == nil {
		t.Errorf("suggestions status = %d, body = %+v", code, suggestions)
	}

	place := map[string]interface{}{"destination": map[string]interface{}{"to_go_info": map[string]string{"name": "Ana", "phone": "3001234567"}}}
	var order idResponse
	if code := s.do(http.MethodPost, base+"/place", admin, place, &order); code != http.StatusCreated {
		t.Fatalf("place status = %d", code)
	}
	if code := s.do(http.MethodGet, base, admin, nil, nil); code != http.StatusNotFound {
		t.Errorf("draft after place status = %d, want 404", code)
	}

	var contact struct {
		HasPhone bool `json:"has_phone"`
		Messages []struct {
			Template string `json:"template"`
			Link     string `json:"link"`
		} `json:"messages"`
	}
	if code := s.do(http.MethodGet, "/api/v1/orders/"+order.ID+"/whatsapp", admin, nil, &contact); code != http.StatusOK {
		t.Fatalf("whatsapp status = %d", code)
	}
	if !contact.HasPhone || len(contact.Messages) != 2 || contact.Messages[1].Template != "ready" {
		t.Errorf("contact = %+v", contact)
	}

	var updated struct {
		Order struct {
			Status string `json:"status"`
		} `json:"order"`
	}
	if code := s.do(http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", admin, map[string]string{"status": "ready"}, &updated); code != http.StatusOK || updated.Order.Status != "ready" {
		t.Errorf("status update = %d, %+v", code, updated)
	}
	if code := s.do(http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", admin, map[string]string{"status": "open"}, nil); code != http.StatusConflict {
		t.Errorf("ready -> open status = %d, want 409", code)
	}
}
