package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

type fakeProductRepo struct {
	repository.ProductRepository
	byID map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByFoldedName(_ context.Context, nameFold string) (*entity.Product, error) {
	for _, p := range f.byID {
		if entity.FoldName(p.Name) == nameFold {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SetActive(_ context.Context, id string, active bool) error {
	f.byID[id].Active = active
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeCategoryRepo struct {
	repository.CategoryRepository
	byID         map[string]*entity.Category
	productCount map[string]int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[string]*entity.Category{}, productCount: map[string]int64{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) GetByFoldedName(_ context.Context, nameFold string) (*entity.Category, error) {
	for _, c := range f.byID {
		if entity.FoldName(c.Name) == nameFold {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) CountProducts(_ context.Context, id string) (int64, error) {
	return f.productCount[id], nil
}

type fakeCatalogLedgerRepo struct {
	repository.LedgerRepository
	byProd    map[string]*entity.StockLedger
	createErr error
}

func newFakeCatalogLedgerRepo() *fakeCatalogLedgerRepo {
	return &fakeCatalogLedgerRepo{byProd: map[string]*entity.StockLedger{}}
}

func (f *fakeCatalogLedgerRepo) Create(_ context.Context, l *entity.StockLedger) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *l
	f.byProd[l.ProductID] = &cp
	return nil
}

func (f *fakeCatalogLedgerRepo) DeleteByProductID(_ context.Context, productID string) error {
	delete(f.byProd, productID)
	return nil
}

// fakeTxRunner ejecuta fn sobre los mismos fakes y revierte el mapa de
// productos y ledgers si fn falla, imitando el rollback.
type fakeTxRunner struct {
	products *fakeProductRepo
	ledgers  *fakeCatalogLedgerRepo
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	prodSnap := map[string]*entity.Product{}
	for k, v := range f.products.byID {
		prodSnap[k] = v
	}
	ledSnap := map[string]*entity.StockLedger{}
	for k, v := range f.ledgers.byProd {
		ledSnap[k] = v
	}
	err := fn(ctx, repository.Repositories{Products: f.products, Ledgers: f.ledgers})
	if err != nil {
		f.products.byID = prodSnap
		f.ledgers.byProd = ledSnap
	}
	return err
}

type catalogFixture struct {
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	ledgers    *fakeCatalogLedgerRepo
	uc         *ProductUseCase
}

func newCatalogFixture() *catalogFixture {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	ledgers := newFakeCatalogLedgerRepo()
	categories.byID["cat-1"] = &entity.Category{ID: "cat-1", Name: "Electrónica"}
	tx := &fakeTxRunner{products: products, ledgers: ledgers}
	return &catalogFixture{
		products:   products,
		categories: categories,
		ledgers:    ledgers,
		uc:         NewProductUseCase(products, categories, ledgers, tx, logger.Nop()),
	}
}

func TestCreateProduct_SinStockInicial(t *testing.T) {
	fx := newCatalogFixture()

	resp, err := fx.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Teclado mecánico",
		Price:      decimal.NewFromFloat(59.90),
		CategoryID: "cat-1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Nil(t, resp.Stock)
	assert.Empty(t, fx.ledgers.byProd, "sin cantidad inicial no se crea ledger")
}

func TestCreateProduct_ConStockInicialCreaLedgerEnRevisionCero(t *testing.T) {
	fx := newCatalogFixture()

	qty, threshold := int64(20), int64(5)
	resp, err := fx.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:            "Monitor 27",
		Price:           decimal.NewFromInt(300),
		CategoryID:      "cat-1",
		InitialQuantity: &qty,
		Threshold:       &threshold,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Stock)
	assert.Equal(t, int64(20), *resp.Stock)
	assert.Equal(t, "NORMAL", resp.StockStatus)

	ledger := fx.ledgers.byProd[resp.ID]
	require.NotNil(t, ledger)
	assert.Equal(t, int64(0), ledger.Revision)
}

func TestCreateProduct_FalloDeLedgerNoDejaProductoHuerfano(t *testing.T) {
	fx := newCatalogFixture()
	fx.ledgers.createErr = assert.AnError

	qty := int64(5)
	_, err := fx.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:            "Webcam",
		Price:           decimal.NewFromInt(80),
		CategoryID:      "cat-1",
		InitialQuantity: &qty,
	})
	require.Error(t, err)
	assert.Empty(t, fx.products.byID, "la transacción debe revertir el producto")
	assert.Empty(t, fx.ledgers.byProd)
}

func TestCreateProduct_NombreDuplicadoSinDistinguirMayusculas(t *testing.T) {
	fx := newCatalogFixture()
	fx.products.byID["p1"] = &entity.Product{ID: "p1", Name: "Teclado", CategoryID: "cat-1", Active: true}

	_, err := fx.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "TECLADO",
		Price:      decimal.NewFromInt(10),
		CategoryID: "cat-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	fx := newCatalogFixture()
	_, err := fx.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Mouse",
		Price:      decimal.NewFromInt(10),
		CategoryID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateProduct_PrecioNoPositivo(t *testing.T) {
	fx := newCatalogFixture()
	_, err := fx.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Gratis",
		Price:      decimal.Zero,
		CategoryID: "cat-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_RenombreConflictivo(t *testing.T) {
	fx := newCatalogFixture()
	fx.products.byID["p1"] = &entity.Product{ID: "p1", Name: "Teclado", CategoryID: "cat-1", Active: true}
	fx.products.byID["p2"] = &entity.Product{ID: "p2", Name: "Mouse", CategoryID: "cat-1", Active: true}

	name := "teclado"
	_, err := fx.uc.Update(context.Background(), "p2", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateProduct_MismoNombreConOtraCajaNoConflictua(t *testing.T) {
	fx := newCatalogFixture()
	fx.products.byID["p1"] = &entity.Product{ID: "p1", Name: "Teclado", CategoryID: "cat-1", Active: true}

	name := "TECLADO"
	resp, err := fx.uc.Update(context.Background(), "p1", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "TECLADO", resp.Name)
}

func TestDeactivateReactivate(t *testing.T) {
	fx := newCatalogFixture()
	fx.products.byID["p1"] = &entity.Product{ID: "p1", Name: "Teclado", CategoryID: "cat-1", Active: true}
	ctx := context.Background()

	require.NoError(t, fx.uc.Deactivate(ctx, "p1"))
	assert.False(t, fx.products.byID["p1"].Active)

	require.NoError(t, fx.uc.Reactivate(ctx, "p1"))
	assert.True(t, fx.products.byID["p1"].Active)
}

func TestPermanentDelete_PurgaProductoYLedger(t *testing.T) {
	fx := newCatalogFixture()
	fx.products.byID["p1"] = &entity.Product{ID: "p1", Name: "Teclado", CategoryID: "cat-1", Active: true}
	fx.ledgers.byProd["p1"] = &entity.StockLedger{ID: "l1", ProductID: "p1", Quantity: 3}

	require.NoError(t, fx.uc.PermanentDelete(context.Background(), "p1"))
	assert.Empty(t, fx.products.byID)
	assert.Empty(t, fx.ledgers.byProd)
}

func TestCreateCategory_NombreDuplicado(t *testing.T) {
	categories := newFakeCategoryRepo()
	categories.byID["c1"] = &entity.Category{ID: "c1", Name: "Hogar"}
	uc := NewCategoryUseCase(categories, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "hogar"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeleteCategory_ConProductosSeRechaza(t *testing.T) {
	categories := newFakeCategoryRepo()
	categories.byID["c1"] = &entity.Category{ID: "c1", Name: "Hogar"}
	categories.productCount["c1"] = 4
	uc := NewCategoryUseCase(categories, logger.Nop())

	err := uc.Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, categories.byID, "c1", "la categoría no debe borrarse")
}

func TestDeleteCategory_SinProductos(t *testing.T) {
	categories := newFakeCategoryRepo()
	categories.byID["c1"] = &entity.Category{ID: "c1", Name: "Hogar"}
	uc := NewCategoryUseCase(categories, logger.Nop())

	require.NoError(t, uc.Delete(context.Background(), "c1"))
	assert.Empty(t, categories.byID)
}
