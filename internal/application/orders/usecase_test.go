package orders

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/application/inventory"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El memStore comparte estado entre los repos de pedidos y
// stock; el fakeTx serializa transacciones con un mutex (el equivalente grueso
// del FOR UPDATE) y revierte con snapshot si fn devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu     sync.Mutex
	orders map[string]entity.Order
	lines  map[string]entity.OrderLine
	stock  map[string]int64 // warehouseID+"/"+productID → qty
}

func newMemStore() *memStore {
	return &memStore{
		orders: make(map[string]entity.Order),
		lines:  make(map[string]entity.OrderLine),
		stock:  make(map[string]int64),
	}
}

func (s *memStore) snapshot() *memStore {
	clone := newMemStore()
	for k, v := range s.orders {
		clone.orders[k] = v
	}
	for k, v := range s.lines {
		clone.lines[k] = v
	}
	for k, v := range s.stock {
		clone.stock[k] = v
	}
	return clone
}

func (s *memStore) restoreFrom(snap *memStore) {
	s.orders = snap.orders
	s.lines = snap.lines
	s.stock = snap.stock
}

func stockKey(warehouseID, productID string) string {
	return warehouseID + "/" + productID
}

type fakeOrderRepo struct{ store *memStore }

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	if o, ok := r.store.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range r.store.orders {
		if f.SalesmanID != "" && o.SalesmanID != f.SalesmanID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetLines(_ context.Context, orderID string) ([]entity.OrderLine, error) {
	var out []entity.OrderLine
	for _, l := range r.store.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetLine(_ context.Context, lineID string) (*entity.OrderLine, error) {
	if l, ok := r.store.lines[lineID]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) Insert(_ context.Context, o *entity.Order) error {
	r.store.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) InsertLine(_ context.Context, l *entity.OrderLine) error {
	r.store.lines[l.ID] = *l
	return nil
}

func (r *fakeOrderRepo) DeleteLine(_ context.Context, lineID string) error {
	delete(r.store.lines, lineID)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	o := r.store.orders[id]
	o.Status = status
	r.store.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	o := r.store.orders[id]
	o.TotalAmount = total
	r.store.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	for lineID, l := range r.store.lines {
		if l.OrderID == id {
			delete(r.store.lines, lineID)
		}
	}
	delete(r.store.orders, id)
	return nil
}

type fakeStockRepo struct{ store *memStore }

func (r *fakeStockRepo) Get(_ context.Context, warehouseID, productID string) (*entity.WarehouseStock, error) {
	qty, ok := r.store.stock[stockKey(warehouseID, productID)]
	if !ok {
		return nil, nil
	}
	return &entity.WarehouseStock{WarehouseID: warehouseID, ProductID: productID, Qty: qty}, nil
}

func (r *fakeStockRepo) List(context.Context, repository.StockFilter) ([]entity.WarehouseStock, error) {
	return nil, nil
}

func (r *fakeStockRepo) LowStockCount(context.Context) (int64, error) { return 0, nil }

// Deduct reproduce el decremento condicional: o hay existencia suficiente y
// resta, o no toca nada.
func (r *fakeStockRepo) Deduct(_ context.Context, warehouseID, productID string, qty int64) error {
	key := stockKey(warehouseID, productID)
	if r.store.stock[key] < qty {
		return domain.ErrInsufficientStock
	}
	r.store.stock[key] -= qty
	return nil
}

func (r *fakeStockRepo) Restore(_ context.Context, warehouseID, productID string, qty int64) error {
	r.store.stock[stockKey(warehouseID, productID)] += qty
	return nil
}

func (r *fakeStockRepo) Upsert(_ context.Context, s *entity.WarehouseStock) error {
	r.store.stock[stockKey(s.WarehouseID, s.ProductID)] = s.Qty
	return nil
}

func (r *fakeStockRepo) Remove(_ context.Context, warehouseID, productID string) error {
	delete(r.store.stock, stockKey(warehouseID, productID))
	return nil
}

type fakeTx struct{ store *memStore }

func (t *fakeTx) Run(_ context.Context, fn func(repository.OrderRepository, repository.StockRepository) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(&fakeOrderRepo{store: t.store}, &fakeStockRepo{store: t.store}); err != nil {
		t.store.restoreFrom(snap)
		return err
	}
	return nil
}

type fakeProductRepo struct{ products map[string]entity.Product }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) List(context.Context, string, int, int) ([]entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Insert(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}
func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

type fakeCustomerRepo struct{ customers map[string]entity.Customer }

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(context.Context, repository.CustomerFilter) ([]entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Insert(context.Context, *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(context.Context, string) error           { return nil }

type fakeAuditRepo struct{}

func (fakeAuditRepo) Insert(context.Context, *entity.AuditLog) error { return nil }
func (fakeAuditRepo) ListRecent(context.Context, int) ([]entity.AuditLog, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario base: bodega w1, producto prod-1 a $25.00, cliente c1.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *UseCase
	store    *memStore
	products *fakeProductRepo
}

func newFixture(t *testing.T, initialStock int64) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	store := newMemStore()
	store.stock[stockKey("w1", "prod-1")] = initialStock

	products := &fakeProductRepo{products: map[string]entity.Product{
		"prod-1": {ID: "prod-1", Name: "Cemento gris 50kg", UnitPrice: decimal.RequireFromString("25.00")},
		"prod-2": {ID: "prod-2", Name: "Varilla 3/8", UnitPrice: decimal.RequireFromString("4.50")},
	}}
	customers := &fakeCustomerRepo{customers: map[string]entity.Customer{
		"c1": {ID: "c1", Name: "Constructora Andina"},
	}}

	uc := NewUseCase(
		&fakeOrderRepo{store: store},
		products,
		customers,
		&fakeTx{store: store},
		inventory.NewLedger(log),
		audit.NewRecorder(fakeAuditRepo{}, log),
		log,
	)
	return &fixture{uc: uc, store: store, products: products}
}

func (f *fixture) stockOf(warehouseID, productID string) int64 {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.stock[stockKey(warehouseID, productID)]
}

func oneLine(qty int64) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.OrderLineRequest{{ProductID: "prod-1", WarehouseID: "w1", Qty: qty}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DeduceStockYCongelaPrecio(t *testing.T) {
	f := newFixture(t, 10)

	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(3))
	require.NoError(t, err)

	assert.Equal(t, int64(7), f.stockOf("w1", "prod-1"))
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "75.00", resp.TotalAmount)

	// Subir el precio de catálogo no toca el pedido emitido.
	p := f.products.products["prod-1"]
	p.UnitPrice = decimal.RequireFromString("99.00")
	f.products.products["prod-1"] = p

	again, err := f.uc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "75.00", again.TotalAmount, "el precio queda congelado por línea")
}

func TestCreate_StockInsuficiente(t *testing.T) {
	f := newFixture(t, 5)

	_, err := f.uc.Create(context.Background(), "sales-1", oneLine(6))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.stockOf("w1", "prod-1"), "un pedido rechazado no toca el stock")
}

// Si la segunda línea falla por stock, la deducción de la primera también
// revierte: ni pedido ni deducciones parciales.
func TestCreate_MultilineaTodoONada(t *testing.T) {
	f := newFixture(t, 10)
	f.store.stock[stockKey("w1", "prod-2")] = 2

	_, err := f.uc.Create(context.Background(), "sales-1", dto.CreateOrderRequest{
		CustomerID: "c1",
		Lines: []dto.OrderLineRequest{
			{ProductID: "prod-1", WarehouseID: "w1", Qty: 4},
			{ProductID: "prod-2", WarehouseID: "w1", Qty: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"), "la deducción de la primera línea debe revertir")
	assert.Equal(t, int64(2), f.stockOf("w1", "prod-2"))
	assert.Empty(t, f.store.orders, "el pedido no debe quedar escrito")
	assert.Empty(t, f.store.lines)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t, 10)

	req := oneLine(1)
	req.CustomerID = "no-existe"
	_, err := f.uc.Create(context.Background(), "sales-1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_CaminoHaciaAdelante(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(2))
	require.NoError(t, err)

	out, err := f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "PROCESSING")
	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", out.Status)

	out, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", out.Status)

	// Completar no restaura nada: la mercancía salió de verdad.
	assert.Equal(t, int64(8), f.stockOf("w1", "prod-1"))
}

func TestSetStatus_SaltarProcessingPermitido(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(2))
	require.NoError(t, err)

	out, err := f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", out.Status)
}

func TestSetStatus_RetrocederProhibido(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(2))
	require.NoError(t, err)

	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "COMPLETED")
	require.NoError(t, err)

	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "PENDING")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "CANCELLED")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un pedido completado ya no se cancela")
}

func TestCancelar_RestauraStockYEsTerminal(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(4))
	require.NoError(t, err)
	require.Equal(t, int64(6), f.stockOf("w1", "prod-1"))

	out, err := f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", out.Status)
	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"), "cancelar devuelve exactamente lo deducido")

	// Cancelar de nuevo no puede restaurar dos veces.
	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "CANCELLED")
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"))

	// Tampoco se reactiva: CANCELLED es terminal.
	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "PENDING")
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
}

func TestAddLine_DeduceYRecalculaTotal(t *testing.T) {
	f := newFixture(t, 10)
	f.store.stock[stockKey("w1", "prod-2")] = 20

	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(2)) // 50.00
	require.NoError(t, err)

	out, err := f.uc.AddLine(context.Background(), "sales-1", resp.ID, dto.OrderLineRequest{
		ProductID: "prod-2", WarehouseID: "w1", Qty: 4, // +18.00
	})
	require.NoError(t, err)

	assert.Equal(t, int64(16), f.stockOf("w1", "prod-2"))
	assert.Equal(t, "68.00", out.TotalAmount)
	assert.Len(t, out.Lines, 2)
}

func TestAddLine_SobrePedidoCanceladoProhibido(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(2))
	require.NoError(t, err)
	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "CANCELLED")
	require.NoError(t, err)

	_, err = f.uc.AddLine(context.Background(), "sales-1", resp.ID, dto.OrderLineRequest{
		ProductID: "prod-1", WarehouseID: "w1", Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"), "nada deducido sobre un pedido cancelado")
}

func TestRemoveLine_RestauraYRecalcula(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(3))
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	out, err := f.uc.RemoveLine(context.Background(), "sales-1", resp.ID, resp.Lines[0].ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"))
	assert.Equal(t, "0.00", out.TotalAmount)
	assert.Empty(t, out.Lines)
}

// Quitar una línea de un pedido cancelado duplicaría la restauración que ya
// hizo la cancelación.
func TestRemoveLine_TrasCancelarProhibido(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "sales-1", oneLine(3))
	require.NoError(t, err)
	_, err = f.uc.SetStatus(context.Background(), "sales-1", resp.ID, "CANCELLED")
	require.NoError(t, err)

	_, err = f.uc.RemoveLine(context.Background(), "sales-1", resp.ID, resp.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"), "la restauración no puede ejecutarse dos veces")
}

func TestDelete_PedidoActivoRestauraStock(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "hod-1", oneLine(4))
	require.NoError(t, err)
	require.Equal(t, int64(6), f.stockOf("w1", "prod-1"))

	require.NoError(t, f.uc.Delete(context.Background(), "hod-1", resp.ID))

	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"))
	assert.Empty(t, f.store.orders)
	assert.Empty(t, f.store.lines)
}

// Un pedido cancelado ya restauró su stock: eliminarlo no vuelve a sumar.
func TestDelete_PedidoCanceladoNoRestauraDeNuevo(t *testing.T) {
	f := newFixture(t, 10)
	resp, err := f.uc.Create(context.Background(), "hod-1", oneLine(4))
	require.NoError(t, err)
	_, err = f.uc.SetStatus(context.Background(), "hod-1", resp.ID, "CANCELLED")
	require.NoError(t, err)
	require.Equal(t, int64(10), f.stockOf("w1", "prod-1"))

	require.NoError(t, f.uc.Delete(context.Background(), "hod-1", resp.ID))
	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"))
}

func TestDelete_PedidoInexistente(t *testing.T) {
	f := newFixture(t, 10)
	err := f.uc.Delete(context.Background(), "hod-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Secuencia completa de venta: las existencias se conservan extremo a extremo.
func TestConservacionDeStock_SecuenciaCompleta(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	o1, err := f.uc.Create(ctx, "sales-1", oneLine(3))
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.stockOf("w1", "prod-1"))

	o2, err := f.uc.Create(ctx, "sales-1", oneLine(4))
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.stockOf("w1", "prod-1"))

	_, err = f.uc.SetStatus(ctx, "sales-1", o2.ID, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.stockOf("w1", "prod-1"))

	require.NoError(t, f.uc.Delete(ctx, "hod-1", o1.ID))
	assert.Equal(t, int64(10), f.stockOf("w1", "prod-1"),
		"tras cancelar y eliminar todo, el stock vuelve al punto de partida")
}

// Dos pedidos concurrentes de 6 unidades sobre un stock de 10: exactamente
// uno gana y el stock final es 4, nunca negativo ni con doble deducción.
func TestConcurrencia_DecrementoCondicional(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(ctx, "sales-1", oneLine(6))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, insufficientCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un pedido debe ganar")
	assert.Equal(t, 1, insufficientCount, "el otro debe fallar por stock insuficiente")
	assert.Equal(t, int64(4), f.stockOf("w1", "prod-1"))
}
