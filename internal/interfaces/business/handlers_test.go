package business_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/internal/application/report"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/interfaces/business"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// stubClient implementa solo lo que cada test necesita; el resto entra en
// pánico si algún handler lo toca por accidente.
type stubClient struct {
	remote.CatalogClient

	products    []dto.ProductResponse
	inventory   []dto.LedgerResponse
	listErr     error
	createErr   error
	decreaseErr error
	statsErr    error
	pingErr     error
}

func (s *stubClient) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	return s.products, s.listErr
}

func (s *stubClient) ListInventory(ctx context.Context) ([]dto.LedgerResponse, error) {
	return s.inventory, s.listErr
}

func (s *stubClient) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.ProductResponse{ID: "p1", Name: in.Name, Price: in.Price}, nil
}

func (s *stubClient) DecreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	return nil, s.decreaseErr
}

func (s *stubClient) StockStats(ctx context.Context) (*dto.StockStatsResponse, error) {
	return nil, s.statsErr
}

func (s *stubClient) TotalValue(ctx context.Context) (*dto.TotalValueResponse, error) {
	return nil, s.statsErr
}

func (s *stubClient) Ping(ctx context.Context) error {
	return s.pingErr
}

func buildApp(t *testing.T, client remote.CatalogClient) *fiber.App {
	t.Helper()
	log := logger.Nop()
	facade := remote.NewFacade(client, log)
	app := fiber.New()
	business.Router(app, business.RouterDeps{
		Facade:  facade,
		Reports: report.NewService(facade, nil, log),
		AppName: "business-test",
	})
	return app
}

func errUnavailable() error {
	return fmt.Errorf("conexión rechazada: %w", domain.ErrDependencyUnavailable)
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func TestListProducts_EnriqueceConStock(t *testing.T) {
	price := decimal.NewFromInt(50)
	client := &stubClient{
		products: []dto.ProductResponse{
			{ID: "p1", Name: "Tornillos", Price: price},
			{ID: "p2", Name: "Tuercas", Price: price},
		},
		inventory: []dto.LedgerResponse{
			{ID: "l1", ProductID: "p1", Quantity: 8, Threshold: 5, Status: "NORMAL", UpdatedAt: time.Now()},
		},
	}
	app := buildApp(t, client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/productos/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(business.HeaderDegraded))

	var got []dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Stock)
	assert.EqualValues(t, 8, *got[0].Stock)
	assert.Equal(t, "NORMAL", got[0].StockStatus)
	require.NotNil(t, got[0].InventoryValue)
	assert.True(t, got[0].InventoryValue.Equal(decimal.NewFromInt(400)))

	// p2 no tiene ledger: viaja sin datos de stock.
	assert.Nil(t, got[1].Stock)
	assert.Empty(t, got[1].StockStatus)
}

func TestListProducts_DataTierCaidoResponde200Degradado(t *testing.T) {
	client := &stubClient{listErr: errUnavailable()}
	app := buildApp(t, client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/productos/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(business.HeaderDegraded))

	var got []dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got)
}

func TestCreateProduct_DataTierCaidoResponde503(t *testing.T) {
	client := &stubClient{createErr: errUnavailable()}
	app := buildApp(t, client)

	body := `{"name":"Tornillos","price":"50","category_id":"c1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/productos/", jsonBody(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var got dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", got.Code)
}

func TestDecreaseStock_StockInsuficientePasaIntacto(t *testing.T) {
	client := &stubClient{decreaseErr: &domain.InsufficientStockError{
		ProductID: "p1",
		Available: 3,
		Requested: 10,
	}}
	app := buildApp(t, client)

	req := httptest.NewRequest(http.MethodPost, "/api/inventario/producto/p1/decrementar", jsonBody(`{"amount":10}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var got dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "INSUFFICIENT_STOCK", got.Code)
	require.NotNil(t, got.Available)
	assert.EqualValues(t, 3, *got.Available)
	require.NotNil(t, got.Requested)
	assert.EqualValues(t, 10, *got.Requested)
}

// Los agregados son lecturas: con el data tier caído responden 200 con los
// valores en cero y el header de degradación, nunca 503.
func TestStockStats_DataTierCaidoResponde200ConCeros(t *testing.T) {
	client := &stubClient{statsErr: errUnavailable()}
	app := buildApp(t, client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventario/estadisticas", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(business.HeaderDegraded))

	var got dto.StockStatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Zero(t, got.Count)
	assert.Zero(t, got.TotalQuantity)
	assert.True(t, got.AverageQuantity.IsZero())
}

func TestTotalValue_DataTierCaidoResponde200ConCero(t *testing.T) {
	client := &stubClient{statsErr: errUnavailable()}
	app := buildApp(t, client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventario/valor-total", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(business.HeaderDegraded))

	var got dto.TotalValueResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.TotalValue.IsZero())
}

// buildApp arma el servicio de reportes sin renderer: la ruta del PDF debe
// responder un error controlado en vez de entrar en pánico.
func TestAlertsPDF_SinRendererNoEntraEnPanico(t *testing.T) {
	app := buildApp(t, &stubClient{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/reportes/alertas/pdf", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealth_ReportaDegradadoSiElDataTierNoResponde(t *testing.T) {
	client := &stubClient{pingErr: errUnavailable()}
	app := buildApp(t, client)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "degraded", got.Status)
}
