package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Flota-api/internal/application/inventory"
	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos del libro de stock
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	stock     map[string]*entity.Stock
	movements []*entity.StockMovement
	products  map[string]*entity.Product
	wares     map[string]*entity.Warehouse
}

func key(productID, warehouseID string) string { return productID + "|" + warehouseID }

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if st, ok := r.s.stock[key(productID, warehouseID)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID,
		Quantity: decimal.Zero, AverageCost: decimal.Zero}, nil
}
func (r *memStockRepo) EnsureRow(productID, warehouseID string) error {
	k := key(productID, warehouseID)
	if _, ok := r.s.stock[k]; !ok {
		r.s.stock[k] = &entity.Stock{ProductID: productID, WarehouseID: warehouseID,
			Quantity: decimal.Zero, AverageCost: decimal.Zero}
	}
	return nil
}
func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}
func (r *memStockRepo) Upsert(st *entity.Stock) error {
	cp := *st
	r.s.stock[key(st.ProductID, st.WarehouseID)] = &cp
	return nil
}
func (r *memStockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stock {
		if st.WarehouseID == warehouseID {
			out = append(out, st)
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByOrder(orderID string) ([]*entity.StockMovement, error) {
	return nil, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}
func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	wh, ok := r.s.wares[id]
	if !ok {
		return nil, nil
	}
	return wh, nil
}
func (r *memWarehouseRepo) GetByBranch(branchID string) (*entity.Warehouse, error) {
	for _, wh := range r.s.wares {
		if wh.BranchID == branchID {
			return wh, nil
		}
	}
	return nil, nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&memMovementRepo{t.s}, &memStockRepo{t.s}, &memProductRepo{t.s})
}

const (
	coID   = "c-1"
	whID   = "w-1"
	prodID = "p-1"
	usrID  = "u-1"
)

func newStore() *memStore {
	return &memStore{
		stock: map[string]*entity.Stock{},
		products: map[string]*entity.Product{
			prodID: {ID: prodID, CompanyID: coID, Name: "Filtro", Price: decimal.NewFromInt(10), Active: true},
		},
		wares: map[string]*entity.Warehouse{
			whID: {ID: whID, CompanyID: coID, BranchID: "b-1"},
		},
	}
}

func buildLedger(s *memStore) *inventory.StockLedgerUseCase {
	return inventory.NewStockLedgerUseCase(&memTxRunner{s}, &memProductRepo{s}, &memWarehouseRepo{s})
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveEntry
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveEntry_PrimeraEntradaFijaElPromedio(t *testing.T) {
	s := newStore()
	uc := buildLedger(s)

	err := uc.ReceiveEntry(context.Background(), inventory.EntryInput{
		CompanyID: coID, UserID: usrID, ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	st := s.stock[key(prodID, whID)]
	require.NotNil(t, st, "la fila de stock se crea si no existía")
	assert.True(t, decimal.NewFromInt(10).Equal(st.Quantity))
	assert.True(t, decimal.NewFromInt(8).Equal(st.AverageCost))
	// El costo del producto sigue al del stock
	assert.True(t, decimal.NewFromInt(8).Equal(s.products[prodID].Cost))

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, s.movements[0].Type)
	assert.True(t, decimal.NewFromInt(80).Equal(s.movements[0].TotalCost))
}

// recordingStockRepo registra el orden de llamadas sobre el stock.
type recordingStockRepo struct {
	*memStockRepo
	calls []string
}

func (r *recordingStockRepo) EnsureRow(productID, warehouseID string) error {
	r.calls = append(r.calls, "EnsureRow")
	return r.memStockRepo.EnsureRow(productID, warehouseID)
}

func (r *recordingStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	r.calls = append(r.calls, "GetForUpdate")
	return r.memStockRepo.GetForUpdate(productID, warehouseID)
}

func (r *recordingStockRepo) Upsert(st *entity.Stock) error {
	r.calls = append(r.calls, "Upsert")
	return r.memStockRepo.Upsert(st)
}

type recordingTxRunner struct {
	s     *memStore
	stock *recordingStockRepo
}

func (t *recordingTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&memMovementRepo{t.s}, t.stock, &memProductRepo{t.s})
}

func TestReceiveEntry_AseguraLaFilaAntesDeBloquear(t *testing.T) {
	s := newStore()
	rec := &recordingStockRepo{memStockRepo: &memStockRepo{s}}
	uc := inventory.NewStockLedgerUseCase(&recordingTxRunner{s, rec}, &memProductRepo{s}, &memWarehouseRepo{s})

	err := uc.ReceiveEntry(context.Background(), inventory.EntryInput{
		CompanyID: coID, UserID: usrID, ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	// Sobre una fila ausente FOR UPDATE no bloquea nada: la fila debe existir
	// antes del bloqueo o dos primeras entradas simultáneas se pisan entre sí.
	require.GreaterOrEqual(t, len(rec.calls), 2)
	assert.Equal(t, []string{"EnsureRow", "GetForUpdate"}, rec.calls[:2])

	st := s.stock[key(prodID, whID)]
	require.NotNil(t, st)
	assert.True(t, decimal.NewFromInt(10).Equal(st.Quantity))
}

func TestConsume_FilaAusente_NoCreaFila(t *testing.T) {
	s := newStore()
	rec := &recordingStockRepo{memStockRepo: &memStockRepo{s}}
	uc := inventory.NewStockLedgerUseCase(&recordingTxRunner{s, rec}, &memProductRepo{s}, &memWarehouseRepo{s})

	_, err := uc.ConsumeForOrderInTx(
		&memMovementRepo{s}, rec,
		s.products[prodID], whID, "orden-1", usrID,
		decimal.NewFromInt(1), decimal.Zero, time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"consumir sobre fila ausente falla por stock, sin crear la fila")
	assert.NotContains(t, rec.calls, "EnsureRow")
	assert.Empty(t, s.stock)
}

func TestReceiveEntry_RecalculaPromedioPonderado(t *testing.T) {
	s := newStore()
	s.stock[key(prodID, whID)] = &entity.Stock{
		ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(10),
	}
	uc := buildLedger(s)

	err := uc.ReceiveEntry(context.Background(), inventory.EntryInput{
		CompanyID: coID, UserID: usrID, ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	st := s.stock[key(prodID, whID)]
	assert.True(t, decimal.NewFromInt(20).Equal(st.Quantity))
	assert.True(t, decimal.NewFromInt(15).Equal(st.AverageCost),
		"(10×10 + 10×20) / 20 = 15, obtuvo %s", st.AverageCost)
}

func TestReceiveEntry_CantidadNoPositiva(t *testing.T) {
	uc := buildLedger(newStore())
	err := uc.ReceiveEntry(context.Background(), inventory.EntryInput{
		CompanyID: coID, UserID: usrID, ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.Zero, UnitCost: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiveEntry_ProductoDeOtraEmpresa(t *testing.T) {
	s := newStore()
	s.products[prodID].CompanyID = "c-ajena"
	uc := buildLedger(s)

	err := uc.ReceiveEntry(context.Background(), inventory.EntryInput{
		CompanyID: coID, UserID: usrID, ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReceiveEntry_BodegaInexistente(t *testing.T) {
	uc := buildLedger(newStore())
	err := uc.ReceiveEntry(context.Background(), inventory.EntryInput{
		CompanyID: coID, UserID: usrID, ProductID: prodID, WarehouseID: "w-fantasma",
		Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumeForOrderInTx — salidas hacia órdenes de mantenimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestConsume_SalidaNoAlteraElPromedio(t *testing.T) {
	s := newStore()
	s.stock[key(prodID, whID)] = &entity.Stock{
		ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(8),
	}
	uc := buildLedger(s)

	resolved, err := uc.ConsumeForOrderInTx(
		&memMovementRepo{s}, &memStockRepo{s},
		s.products[prodID], whID, "orden-1", usrID,
		decimal.NewFromInt(4), decimal.Zero, time.Now(),
	)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(8).Equal(resolved), "sin costo informado gana el promedio")
	st := s.stock[key(prodID, whID)]
	assert.True(t, decimal.NewFromInt(6).Equal(st.Quantity))
	assert.True(t, decimal.NewFromInt(8).Equal(st.AverageCost), "las salidas no mueven el promedio")
}

func TestConsume_ExcedeDisponible(t *testing.T) {
	s := newStore()
	s.stock[key(prodID, whID)] = &entity.Stock{
		ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(3), AverageCost: decimal.NewFromInt(8),
	}
	uc := buildLedger(s)

	_, err := uc.ConsumeForOrderInTx(
		&memMovementRepo{s}, &memStockRepo{s},
		s.products[prodID], whID, "orden-1", usrID,
		decimal.NewFromInt(4), decimal.Zero, time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.movements, "una salida rechazada no deja movimiento")
}

func TestConsume_SinPromedioNiPrecio_CostoCero(t *testing.T) {
	s := newStore()
	s.products[prodID].Price = decimal.Zero
	s.stock[key(prodID, whID)] = &entity.Stock{
		ProductID: prodID, WarehouseID: whID,
		Quantity: decimal.NewFromInt(5), AverageCost: decimal.Zero,
	}
	uc := buildLedger(s)

	resolved, err := uc.ConsumeForOrderInTx(
		&memMovementRepo{s}, &memStockRepo{s},
		s.products[prodID], whID, "orden-1", usrID,
		decimal.NewFromInt(1), decimal.Zero, time.Now(),
	)
	require.NoError(t, err)
	assert.True(t, resolved.IsZero(), "sin ninguna fuente de costo la salida vale cero")
}
