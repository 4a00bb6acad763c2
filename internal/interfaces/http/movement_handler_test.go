package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/export"
	apphttp "github.com/huseyintonguc/DEPO/internal/interfaces/http"
)

// memStore is an in-memory TableStore for exercising the handlers without a
// workbook or a database behind them.
type memStore struct {
	products []entity.Product
	ledger   dominv.Ledger
	load     *appinv.LoadReport
	fail     error
}

func (s *memStore) LoadProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products, nil
}

func (s *memStore) LoadMovements(ctx context.Context) (dominv.Ledger, *appinv.LoadReport, error) {
	if s.load != nil {
		return s.ledger, s.load, nil
	}
	return s.ledger, &appinv.LoadReport{}, nil
}

func (s *memStore) ReplaceMovements(ctx context.Context, l dominv.Ledger) error {
	if s.fail != nil {
		return s.fail
	}
	s.ledger = l
	return nil
}

func (s *memStore) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	s.products = products
	return nil
}

func buildTestApp(store *memStore) *fiber.App {
	loc, _ := time.LoadLocation("Europe/Istanbul")
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Recorder: appinv.NewRecordMovementUseCase(store, loc),
		Reports:  appinv.NewReportUseCase(store),
		Catalog:  appinv.NewCatalogUseCase(store),
		PDF:      export.NewPDFGenerator(),
	})
	return app
}

func seededStore() *memStore {
	return &memStore{
		products: []entity.Product{
			{Code: "UN-001", Name: "Un 25kg"},
			{Code: "SK-002", Name: "Şeker 50kg"},
		},
		ledger: dominv.Ledger{
			{
				ProductCode: "UN-001", ProductName: "Un 25kg",
				Kind: entity.MovementIn, Quantity: decimal.NewFromInt(40), Unit: "adet",
				EffectiveDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				RecordedAt:    time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC),
			},
		},
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRecordMovement_Created(t *testing.T) {
	store := seededStore()
	app := buildTestApp(store)

	resp := postJSON(t, app, "/api/movements", fiber.Map{
		"urun_kodu":  "UN-001",
		"islem_turu": "Giriş",
		"miktar":     "12.5",
		"birim":      "adet",
		"aciklama":   "mal kabul",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UN-001", body["urun_kodu"])
	assert.Equal(t, "Un 25kg", body["urun_adi"], "product name resolved from the catalog")
	assert.Equal(t, "Giriş", body["islem_turu"])
	assert.Equal(t, true, body["synced"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["kayit_zamani"])

	assert.Len(t, store.ledger, 2, "the movement must be written through to the store")
}

func TestRecordMovement_KindFoldsTurkishCase(t *testing.T) {
	store := seededStore()
	app := buildTestApp(store)

	resp := postJSON(t, app, "/api/movements", fiber.Map{
		"urun_kodu":  "UN-001",
		"islem_turu": "GİRİŞ",
		"miktar":     "1",
		"birim":      "adet",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRecordMovement_UnknownProduct_404(t *testing.T) {
	app := buildTestApp(seededStore())

	resp := postJSON(t, app, "/api/movements", fiber.Map{
		"urun_kodu":  "YOK-999",
		"islem_turu": "Giriş",
		"miktar":     "1",
		"birim":      "adet",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNKNOWN_PRODUCT", body["code"])
}

func TestRecordMovement_UnknownKind_400(t *testing.T) {
	app := buildTestApp(seededStore())

	resp := postJSON(t, app, "/api/movements", fiber.Map{
		"urun_kodu":  "UN-001",
		"islem_turu": "Sayım",
		"miktar":     "1",
		"birim":      "adet",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordMovement_InsufficientStock_409(t *testing.T) {
	app := buildTestApp(seededStore())

	resp := postJSON(t, app, "/api/movements", fiber.Map{
		"urun_kodu":  "UN-001",
		"islem_turu": "Çıkış",
		"miktar":     "41",
		"birim":      "adet",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "UN-001", body["urun_kodu"])
	assert.Equal(t, "40", body["mevcut"])
	assert.Equal(t, "41", body["istenen"])
}

func TestRecordMovement_PersistFailure_502WithMovement(t *testing.T) {
	store := seededStore()
	store.fail = assert.AnError
	app := buildTestApp(store)

	resp := postJSON(t, app, "/api/movements", fiber.Map{
		"urun_kodu":  "UN-001",
		"islem_turu": "Giriş",
		"miktar":     "3",
		"birim":      "adet",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "STORE_DIVERGED", body["code"])

	hareket, ok := body["hareket"].(map[string]any)
	require.True(t, ok, "the unsynced movement rides along in the error body")
	assert.Equal(t, "UN-001", hareket["urun_kodu"])
	assert.Equal(t, false, hareket["synced"])
}

func TestRecordMovement_MissingFields_400(t *testing.T) {
	app := buildTestApp(seededStore())

	resp := postJSON(t, app, "/api/movements", fiber.Map{"islem_turu": "Giriş"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListMovements_NewestFirstWithLimit(t *testing.T) {
	store := seededStore()
	store.ledger = append(store.ledger, entity.Movement{
		ProductCode: "SK-002", ProductName: "Şeker 50kg",
		Kind: entity.MovementOut, Quantity: decimal.NewFromInt(2), Unit: "çuval",
		EffectiveDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		RecordedAt:    time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
	})
	app := buildTestApp(store)

	resp := getJSON(t, app, "/api/movements?limit=1")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "SK-002", body.Items[0]["urun_kodu"])
}

func TestListMovements_SurfacesLoadWarnings(t *testing.T) {
	store := seededStore()
	store.load = &appinv.LoadReport{
		Skipped: []appinv.RowIssue{{Table: "hareketler", Row: 5, Reason: "unrecognized islem_turu"}},
	}
	app := buildTestApp(store)

	resp := getJSON(t, app, "/api/movements")
	defer resp.Body.Close()

	var body struct {
		Warnings *struct {
			SkippedRows int `json:"skipped_rows"`
		} `json:"warnings"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Warnings)
	assert.Equal(t, 1, body.Warnings.SkippedRows)
}

func TestListProducts(t *testing.T) {
	app := buildTestApp(seededStore())

	resp := getJSON(t, app, "/api/products")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "UN-001", body[0]["urun_kodu"])
}
