package documents_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/documents"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por los repos fake. El TxRunner fake toma una
// foto antes de cada transacción y la restaura si fn falla, emulando el
// rollback de PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu           sync.Mutex
	docs         map[string]*entity.Document
	balances     map[entity.BalanceKey]*entity.StockBalance
	ledger       []*entity.LedgerEntry
	reservations map[string]*entity.StockReservation
	products     map[string]*entity.Product
	warehouses   map[string]*entity.Warehouse
	contacts     map[string]*entity.Contact
}

func newMemStore() *memStore {
	return &memStore{
		docs:         make(map[string]*entity.Document),
		balances:     make(map[entity.BalanceKey]*entity.StockBalance),
		reservations: make(map[string]*entity.StockReservation),
		products:     make(map[string]*entity.Product),
		warehouses:   make(map[string]*entity.Warehouse),
		contacts:     make(map[string]*entity.Contact),
	}
}

type memSnapshot struct {
	docs         map[string]*entity.Document
	balances     map[entity.BalanceKey]*entity.StockBalance
	ledger       []*entity.LedgerEntry
	reservations map[string]*entity.StockReservation
}

func cloneDoc(d *entity.Document) *entity.Document {
	out := *d
	out.Lines = append([]entity.DocumentLine(nil), d.Lines...)
	if d.ValidatedAt != nil {
		t := *d.ValidatedAt
		out.ValidatedAt = &t
	}
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		docs:         make(map[string]*entity.Document, len(s.docs)),
		balances:     make(map[entity.BalanceKey]*entity.StockBalance, len(s.balances)),
		ledger:       append([]*entity.LedgerEntry(nil), s.ledger...),
		reservations: make(map[string]*entity.StockReservation, len(s.reservations)),
	}
	for k, v := range s.docs {
		snap.docs[k] = cloneDoc(v)
	}
	for k, v := range s.balances {
		b := *v
		snap.balances[k] = &b
	}
	for k, v := range s.reservations {
		r := *v
		snap.reservations[k] = &r
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = snap.docs
	s.balances = snap.balances
	s.ledger = snap.ledger
	s.reservations = snap.reservations
}

// memTxRunner serializa las transacciones y restaura la foto si fn falla.
type memTxRunner struct {
	store *memStore
	txMu  sync.Mutex
}

var _ documents.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(repos documents.TxRepos) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	snap := r.store.snapshot()
	repos := documents.TxRepos{
		Documents:    &memDocumentRepo{store: r.store},
		Balances:     &memBalanceRepo{store: r.store},
		Ledger:       &memLedgerRepo{store: r.store},
		Reservations: &memReservationRepo{store: r.store},
		Products:     &memProductRepo{store: r.store},
	}
	if err := fn(repos); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type memDocumentRepo struct{ store *memStore }

var _ repository.DocumentRepository = (*memDocumentRepo)(nil)

func (r *memDocumentRepo) Create(doc *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.docs[doc.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, d := range r.store.docs {
		if d.Reference == doc.Reference {
			return domain.ErrDuplicate
		}
	}
	r.store.docs[doc.ID] = cloneDoc(doc)
	return nil
}

func (r *memDocumentRepo) GetByID(id string) (*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.docs[id]
	if !ok {
		return nil, nil
	}
	return cloneDoc(d), nil
}

func (r *memDocumentRepo) GetByReference(reference string) (*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.docs {
		if d.Reference == reference {
			return cloneDoc(d), nil
		}
	}
	return nil, nil
}

func (r *memDocumentRepo) GetForUpdate(id string) (*entity.Document, error) {
	return r.GetByID(id)
}

func (r *memDocumentRepo) Update(doc *entity.Document, expectedStatus string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.docs[doc.ID]
	if !ok || current.Status != expectedStatus {
		return domain.ErrConflict
	}
	r.store.docs[doc.ID] = cloneDoc(doc)
	return nil
}

func (r *memDocumentRepo) List(filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.store.docs {
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.WarehouseID != "" && d.WarehouseID != filter.WarehouseID {
			continue
		}
		out = append(out, cloneDoc(d))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memDocumentRepo) Count(filter repository.DocumentFilter) (int, error) {
	list, err := r.List(filter, int(^uint(0)>>1), 0)
	return len(list), err
}

type memBalanceRepo struct{ store *memStore }

var _ repository.StockBalanceRepository = (*memBalanceRepo)(nil)

func (r *memBalanceRepo) Get(key entity.BalanceKey) (*entity.StockBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if b, ok := r.store.balances[key]; ok {
		out := *b
		return &out, nil
	}
	return &entity.StockBalance{
		ProductID:   key.ProductID,
		WarehouseID: key.WarehouseID,
		Location:    key.Location,
		Quantity:    decimal.Zero,
	}, nil
}

func (r *memBalanceRepo) GetForUpdate(key entity.BalanceKey) (*entity.StockBalance, error) {
	return r.Get(key)
}

func (r *memBalanceRepo) Upsert(balance *entity.StockBalance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b := *balance
	r.store.balances[balance.Key()] = &b
	return nil
}

func (r *memBalanceRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockBalance
	for _, b := range r.store.balances {
		if b.WarehouseID == warehouseID {
			c := *b
			out = append(out, &c)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBalanceRepo) CountByWarehouse(warehouseID string) (int, error) {
	list, err := r.ListByWarehouse(warehouseID, int(^uint(0)>>1), 0)
	return len(list), err
}

func (r *memBalanceRepo) ListBelowReorder(string) ([]repository.ReorderItem, error) {
	return nil, nil
}

func (r *memBalanceRepo) ListOutOfStock(string) ([]repository.ReorderItem, error) {
	return nil, nil
}

type memLedgerRepo struct{ store *memStore }

var _ repository.LedgerRepository = (*memLedgerRepo)(nil)

func (r *memLedgerRepo) Create(entry *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e := *entry
	r.store.ledger = append(r.store.ledger, &e)
	return nil
}

func (r *memLedgerRepo) List(filter repository.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.store.ledger {
		if filter.MovementType != "" && e.MovementType != filter.MovementType {
			continue
		}
		if filter.ProductID != "" && e.ProductID != filter.ProductID {
			continue
		}
		if filter.WarehouseID != "" && e.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.DocumentID != "" && e.DocumentID != filter.DocumentID {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memLedgerRepo) Count(filter repository.LedgerFilter) (int, error) {
	list, err := r.List(filter, int(^uint(0)>>1), 0)
	return len(list), err
}

func (r *memLedgerRepo) SumByKey(key entity.BalanceKey) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, e := range r.store.ledger {
		if e.Key() == key {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

type memReservationRepo struct{ store *memStore }

var _ repository.ReservationRepository = (*memReservationRepo)(nil)

func (r *memReservationRepo) Create(res *entity.StockReservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.reservations {
		if existing.DocumentID == res.DocumentID && existing.LineNo == res.LineNo && !existing.Released {
			return domain.ErrDuplicate
		}
	}
	c := *res
	r.store.reservations[res.ID] = &c
	return nil
}

func (r *memReservationRepo) ListByDocument(documentID string) ([]*entity.StockReservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockReservation
	for _, res := range r.store.reservations {
		if res.DocumentID == documentID {
			c := *res
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memReservationRepo) MarkReleased(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	res.Released = true
	res.ReleasedAt = &now
	return nil
}

type memProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	return r.Create(p)
}

func (r *memProductRepo) UpdateReorderPoint(productID string, point decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[productID]; ok {
		p.ReorderPoint = point
	}
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.store.products {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *memProductRepo) Count() (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.products), nil
}

type memWarehouseRepo struct{ store *memStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *w
	r.store.warehouses[w.ID] = &c
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if w, ok := r.store.warehouses[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	return r.Create(w)
}

func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.store.warehouses {
		c := *w
		out = append(out, &c)
	}
	return out, nil
}

type memContactRepo struct{ store *memStore }

var _ repository.ContactRepository = (*memContactRepo)(nil)

func (r *memContactRepo) Create(c *entity.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cc := *c
	r.store.contacts[c.ID] = &cc
	return nil
}

func (r *memContactRepo) GetByID(id string) (*entity.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.contacts[id]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (r *memContactRepo) Update(c *entity.Contact) error {
	return r.Create(c)
}

func (r *memContactRepo) List(kind string, limit, offset int) ([]*entity.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Contact
	for _, c := range r.store.contacts {
		if kind != "" && c.Kind != kind {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}
