package remote

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// stubClient devuelve el mismo error para toda operación; suficiente para
// probar la política de degradación.
type stubClient struct {
	CatalogClient
	err      error
	products []dto.ProductResponse
	mutation *dto.MutationResponse
}

func (s *stubClient) ListProducts(_ context.Context) ([]dto.ProductResponse, error) {
	return s.products, s.err
}

func (s *stubClient) GetProduct(_ context.Context, _ string) (*dto.ProductResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.products[0], nil
}

func (s *stubClient) DecreaseStock(_ context.Context, _ string, _ int64) (*dto.MutationResponse, error) {
	return s.mutation, s.err
}

func (s *stubClient) TotalValue(_ context.Context) (*dto.TotalValueResponse, error) {
	return nil, s.err
}

func (s *stubClient) StockStats(_ context.Context) (*dto.StockStatsResponse, error) {
	return nil, s.err
}

func TestFacade_DataTierCaidoDegradaLecturaDeLista(t *testing.T) {
	down := fmt.Errorf("connection refused: %w", domain.ErrDependencyUnavailable)
	f := NewFacade(&stubClient{err: down}, logger.Nop())

	products, degraded, err := f.ListProducts(context.Background())
	require.NoError(t, err, "el fallo de transporte no debe llegar al caller")
	assert.True(t, degraded)
	assert.NotNil(t, products)
	assert.Empty(t, products, "lista vacía, no nil ni error")
}

func TestFacade_DataTierCaidoDegradaEscritura(t *testing.T) {
	down := fmt.Errorf("timeout: %w", domain.ErrDependencyUnavailable)
	f := NewFacade(&stubClient{err: down}, logger.Nop())

	resp, degraded, err := f.DecreaseStock(context.Background(), "p1", 2)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Nil(t, resp, "una escritura degradada no inventa resultado")
}

func TestFacade_ErrorDeNegocioPasaIntacto(t *testing.T) {
	insufficient := &domain.InsufficientStockError{ProductID: "p1", Available: 1, Requested: 5}
	f := NewFacade(&stubClient{err: insufficient}, logger.Nop())

	resp, degraded, err := f.DecreaseStock(context.Background(), "p1", 5)
	assert.Nil(t, resp)
	assert.False(t, degraded)
	var got *domain.InsufficientStockError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, int64(1), got.Available)
}

func TestFacade_NotFoundPasaIntacto(t *testing.T) {
	f := NewFacade(&stubClient{err: domain.ErrNotFound, products: []dto.ProductResponse{{}}}, logger.Nop())

	_, degraded, err := f.GetProduct(context.Background(), "nadie")
	assert.False(t, degraded)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFacade_SinErrorNoDegrada(t *testing.T) {
	f := NewFacade(&stubClient{products: []dto.ProductResponse{{ID: "p1"}}}, logger.Nop())

	products, degraded, err := f.ListProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Len(t, products, 1)
}

// Los agregados escalares degradan a su valor cero, nunca a nil: el caller
// siempre recibe un total y un conteo usables junto con el flag.
func TestFacade_AgregadoDegradadoDevuelveValorCero(t *testing.T) {
	down := fmt.Errorf("bad gateway: %w", domain.ErrDependencyUnavailable)
	f := NewFacade(&stubClient{err: down}, logger.Nop())

	total, degraded, err := f.TotalValue(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	require.NotNil(t, total)
	assert.True(t, total.TotalValue.IsZero())

	stats, degraded, err := f.StockStats(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	require.NotNil(t, stats)
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.TotalQuantity)
}
