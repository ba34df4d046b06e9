package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sakti-pos/internal/application/auth"
	"github.com/jhoicas/sakti-pos/internal/application/expense"
	"github.com/jhoicas/sakti-pos/internal/application/inventory"
	"github.com/jhoicas/sakti-pos/internal/application/receivable"
	"github.com/jhoicas/sakti-pos/internal/application/reporting"
	"github.com/jhoicas/sakti-pos/internal/application/sales"
	"github.com/jhoicas/sakti-pos/internal/application/supplier"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/credential"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/csvstore"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/excel"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/sakti-pos/internal/interfaces/http"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	clock := func() time.Time { return fixedNow }

	inv := inventory.NewUseCase(store).WithClock(clock)
	verifier := credential.NewBcryptVerifier(
		credential.Account{Username: "pemilik", PasswordHash: mustHash(t, "rahasia-pemilik"), Role: entity.RoleOwner},
		credential.Account{Username: "kasir1", PasswordHash: mustHash(t, "rahasia-kasir"), Role: entity.RoleCashier},
	)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(verifier, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		InventoryUC:  inv,
		SalesUC:      sales.NewUseCase(store, inv, pdf.NewMarotoReceiptGenerator(), "Sakti Utama").WithClock(clock),
		SupplierUC:   supplier.NewUseCase(store).WithClock(clock),
		ReceivableUC: receivable.NewUseCase(store).WithClock(clock),
		ExpenseUC:    expense.NewUseCase(store).WithClock(clock),
		ReportingUC:  reporting.NewUseCase(store, excel.NewWorkbookExporter()).WithClock(clock),
		JWTSecret:    testJWTSecret,
	})
	return &testServer{t: t, app: app}
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// do lanza la petición; body puede ser nil, un string JSON o cualquier valor serializable.
func (s *testServer) do(method, path, token string, body any) (*http.Response, []byte) {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, raw
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	resp, raw := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, resp.StatusCode, string(raw))
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(s.t, json.Unmarshal(raw, &out))
	return "Bearer " + out.Token
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func TestLogin_CredencialesInvalidas_Retorna401(t *testing.T) {
	s := newTestServer(t)

	resp, raw := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "pemilik", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "UNAUTHORIZED")

	resp, raw = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "pemilik"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")

	resp, raw = s.do(http.MethodPost, "/api/auth/login", "", "{no es json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_BODY")
}

func TestLogin_Me_DevuelveRol(t *testing.T) {
	s := newTestServer(t)
	kasir := s.login("kasir1", "rahasia-kasir")

	resp, raw := s.do(http.MethodGet, "/api/auth/me", kasir, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "kasir1", body["username"])
	assert.Equal(t, "kasir", body["role"])
}

func TestFlujoVenta_DescuentaStockYEmiteStruk(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("pemilik", "rahasia-pemilik")
	kasir := s.login("kasir1", "rahasia-kasir")

	resp, raw := s.do(http.MethodPost, "/api/stock", owner, map[string]any{
		"name": "Cat Tembok", "brand": "Avian", "size": "5L",
		"price": "100000", "quantity": 5, "margin_pct": "20",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	itemID := decode(t, raw)["id"].(string)

	// El kasir no ve el margen.
	resp, raw = s.do(http.MethodGet, "/api/stock?q=avian", kasir, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(raw), "margin_pct")
	resp, raw = s.do(http.MethodGet, "/api/stock/"+itemID, owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "20", decode(t, raw)["margin_pct"])

	sale := map[string]any{
		"customer": map[string]string{"name": "Budi", "phone": "0812", "address": "Jl. Merdeka 1"},
		"item":     map[string]string{"name": "Cat Tembok", "brand": "Avian", "size": "5L", "color": "Putih"},
		"quantity": 2,
	}
	resp, raw = s.do(http.MethodPost, "/api/sales", kasir, sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode(t, raw)
	assert.Equal(t, "200000", created["total"])
	assert.Equal(t, "40000", created["profit"])
	saleID := created["id"].(string)

	resp, raw = s.do(http.MethodGet, "/api/stock/"+itemID, kasir, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, decode(t, raw)["quantity"])

	sale["quantity"] = 10
	resp, raw = s.do(http.MethodPost, "/api/sales", kasir, sale)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "OUT_OF_STOCK")

	sale["quantity"] = 1
	sale["item"] = map[string]string{"name": "Semen", "brand": "Tiga Roda", "size": "50kg"}
	resp, raw = s.do(http.MethodPost, "/api/sales", kasir, sale)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "ITEM_NOT_FOUND")

	resp, raw = s.do(http.MethodGet, "/api/sales/"+saleID+"/receipt", kasir, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(raw), "=== STRUK PENJUALAN SAKTI UTAMA ===\n"))
	assert.Contains(t, string(raw), "Kode Warna: Putih\n")
	assert.Contains(t, string(raw), "Total Harga: 200000\n")

	resp, raw = s.do(http.MethodGet, "/api/sales/"+saleID+"/receipt?format=pdf", kasir, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = s.do(http.MethodGet, "/api/sales/"+saleID+"/receipt?format=doc", kasir, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/sales/no-existe", kasir, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVenta_CantidadCero_Retorna400(t *testing.T) {
	s := newTestServer(t)
	kasir := s.login("kasir1", "rahasia-kasir")

	resp, raw := s.do(http.MethodPost, "/api/sales", kasir, map[string]any{
		"customer": map[string]string{"name": "Budi"},
		"item":     map[string]string{"name": "Cat Tembok", "brand": "Avian", "size": "5L"},
		"quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
	assert.Contains(t, string(raw), "quantity")
}

func TestStock_DuplicadoYPermisos(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("pemilik", "rahasia-pemilik")
	kasir := s.login("kasir1", "rahasia-kasir")
	item := map[string]any{"name": "Semen", "brand": "Tiga Roda", "size": "50kg", "price": 65000, "quantity": 10}

	resp, raw := s.do(http.MethodPost, "/api/stock", kasir, item)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	id := decode(t, raw)["id"].(string)

	resp, raw = s.do(http.MethodPost, "/api/stock", owner, item)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "DUPLICATE")

	resp, _ = s.do(http.MethodDelete, "/api/stock/"+id, kasir, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/api/stock/adjust", kasir, map[string]any{"name": "Semen", "brand": "Tiga Roda", "size": "50kg", "delta": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = s.do(http.MethodPost, "/api/stock/adjust", owner, map[string]any{"name": "Semen", "brand": "Tiga Roda", "size": "50kg", "delta": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.EqualValues(t, 15, decode(t, raw)["quantity"])

	resp, raw = s.do(http.MethodGet, "/api/stock/lookup?name=Semen&brand=Tiga+Roda&size=50kg", kasir, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, id, decode(t, raw)["id"])

	resp, _ = s.do(http.MethodDelete, "/api/stock/"+id, owner, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(http.MethodDelete, "/api/stock/"+id, owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportes_SoloOwner(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("pemilik", "rahasia-pemilik")
	kasir := s.login("kasir1", "rahasia-kasir")

	for _, path := range []string{"/api/reports/summary", "/api/receivables", "/api/expenses", "/api/suppliers/bills?month=2026-03"} {
		resp, _ := s.do(http.MethodGet, path, kasir, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}

	resp, raw := s.do(http.MethodPost, "/api/expenses", owner, map[string]any{"category": "salary", "amount": "150000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = s.do(http.MethodGet, "/api/reports/summary?month=2026-03", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	summary := decode(t, raw)
	assert.Equal(t, "2026-03", summary["month"])
	assert.Equal(t, "-150000", summary["net_profit"])

	resp, _ = s.do(http.MethodGet, "/api/reports/summary?month=marzo", owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = s.do(http.MethodPost, "/api/reports/snapshots", owner, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, "2026-03-14", decode(t, raw)["date"])

	resp, raw = s.do(http.MethodGet, "/api/reports/snapshots.csv", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))

	resp, raw = s.do(http.MethodGet, "/api/reports/export.xlsx", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))
}

func TestPiutang_BorrarPorCliente(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("pemilik", "rahasia-pemilik")
	entry := map[string]any{
		"customer": map[string]string{"name": "Budi"},
		"item":     map[string]string{"name": "Cat Tembok", "brand": "Avian", "size": "5L"},
		"quantity": 1, "total": "500000", "paid": "200000", "promised_at": "2026-04-01",
	}
	for i := 0; i < 2; i++ {
		resp, raw := s.do(http.MethodPost, "/api/receivables", owner, entry)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		assert.Equal(t, "300000", decode(t, raw)["remaining"])
	}

	entry["paid"] = "600000"
	resp, _ := s.do(http.MethodPost, "/api/receivables", owner, entry)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, "/api/receivables", owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := s.do(http.MethodDelete, "/api/receivables?customer=Budi", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.EqualValues(t, 2, decode(t, raw)["deleted"])

	resp, _ = s.do(http.MethodDelete, "/api/receivables?customer=Budi", owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
