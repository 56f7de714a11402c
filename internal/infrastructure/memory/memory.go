// Package memory: implementación en memoria de los puertos de persistencia.
// La usan las pruebas de casos de uso y el modo demo sin PostgreSQL.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
)

// Store almacén en memoria. Las entidades se guardan por valor: leer devuelve
// una copia y escribir reemplaza la entrada completa, igual que una fila SQL.
type Store struct {
	mu sync.RWMutex

	// txMu serializa las transacciones de todos los runners que comparten
	// este almacén, así los snapshot/restore nunca se entrelazan.
	txMu sync.Mutex

	products        map[string]entity.Product
	movements       []entity.StockMovement
	customers       map[string]entity.Customer
	loyaltyTxs      []entity.LoyaltyTransaction
	tiers           []entity.LoyaltyTier
	sales           map[string]entity.Sale
	saleItems       map[string][]entity.SaleItem
	discounts       map[string]entity.Discount
	discountsByCode map[string]string
	shifts          map[string]entity.Shift
	payments        map[string][]entity.Payment
	users           map[string]entity.User
	usersByUsername map[string]string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:        map[string]entity.Product{},
		customers:       map[string]entity.Customer{},
		sales:           map[string]entity.Sale{},
		saleItems:       map[string][]entity.SaleItem{},
		discounts:       map[string]entity.Discount{},
		discountsByCode: map[string]string{},
		shifts:          map[string]entity.Shift{},
		payments:        map[string][]entity.Payment{},
		users:           map[string]entity.User{},
		usersByUsername: map[string]string{},
	}
}

// SeedTiers carga el catálogo de niveles de fidelización.
func (s *Store) SeedTiers(tiers []entity.LoyaltyTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers = append([]entity.LoyaltyTier(nil), tiers...)
}

// Accesores de repositorio. Todos operan sobre el mismo almacén.
func (s *Store) Products() repository.ProductRepository        { return &productRepo{s} }
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{s} }
func (s *Store) Customers() repository.CustomerRepository      { return &customerRepo{s} }
func (s *Store) Loyalty() repository.LoyaltyRepository         { return &loyaltyRepo{s} }
func (s *Store) Sales() repository.SaleRepository              { return &saleRepo{s} }
func (s *Store) Discounts() repository.DiscountRepository      { return &discountRepo{s} }
func (s *Store) Shifts() repository.ShiftRepository            { return &shiftRepo{s} }
func (s *Store) Payments() repository.PaymentRepository        { return &paymentRepo{s} }
func (s *Store) Users() repository.UserRepository              { return &userRepo{s} }

// snapshot copia el estado completo para poder revertir una transacción.
// Las entidades son valores, así que la copia de mapas y slices basta.
func (s *Store) snapshot() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &Store{
		products:        copyMap(s.products),
		movements:       append([]entity.StockMovement(nil), s.movements...),
		customers:       copyMap(s.customers),
		loyaltyTxs:      append([]entity.LoyaltyTransaction(nil), s.loyaltyTxs...),
		tiers:           append([]entity.LoyaltyTier(nil), s.tiers...),
		sales:           copyMap(s.sales),
		saleItems:       copySliceMap(s.saleItems),
		discounts:       copyMap(s.discounts),
		discountsByCode: copyMap(s.discountsByCode),
		shifts:          copyMap(s.shifts),
		payments:        copySliceMap(s.payments),
		users:           copyMap(s.users),
		usersByUsername: copyMap(s.usersByUsername),
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.movements = snap.movements
	s.customers = snap.customers
	s.loyaltyTxs = snap.loyaltyTxs
	s.tiers = snap.tiers
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.discounts = snap.discounts
	s.discountsByCode = snap.discountsByCode
	s.shifts = snap.shifts
	s.payments = snap.payments
	s.users = snap.users
	s.usersByUsername = snap.usersByUsername
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copySliceMap[V any](src map[string][]V) map[string][]V {
	dst := make(map[string][]V, len(src))
	for k, v := range src {
		dst[k] = append([]V(nil), v...)
	}
	return dst
}

// --- productos ---

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if p.Barcode != "" {
		for _, other := range r.s.products {
			if other.BranchID == p.BranchID && other.Barcode == p.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetByBarcode(branchID, barcode string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.BranchID == branchID && p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	// Las transacciones en memoria se serializan en el runner; el bloqueo
	// de fila equivale a una lectura simple.
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Product
	for _, p := range r.s.products {
		if p.BranchID == branchID {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageOf(all, limit, offset), nil
}

func (r *productRepo) ListLowStock(branchID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Product
	for _, p := range r.s.products {
		if p.BranchID == branchID && p.IsActive && p.IsLowStock() {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StockQuantity < all[j].StockQuantity })
	out := make([]*entity.Product, 0, len(all))
	for i := range all {
		out = append(out, &all[i])
	}
	return out, nil
}

func pageOf(all []entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Product, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, &all[i])
	}
	return out
}

// --- movimientos de stock ---

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.StockMovement
	// Inserción cronológica: se recorre al revés para devolver reciente primero.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			all = append(all, r.s.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	out := make([]*entity.StockMovement, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, &all[i])
	}
	return out, nil
}

func (r *movementRepo) LastByProduct(productID string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			m := r.s.movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

// --- clientes ---

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.customers {
		if other.Phone == c.Phone {
			return domain.ErrDuplicate
		}
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *customerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.Phone == phone {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *customerRepo) Update(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Customer
	for _, c := range r.s.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Customer, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, &all[i])
	}
	return out, nil
}

// --- libro de puntos ---

type loyaltyRepo struct{ s *Store }

func (r *loyaltyRepo) CreateTransaction(t *entity.LoyaltyTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.loyaltyTxs = append(r.s.loyaltyTxs, *t)
	return nil
}

func (r *loyaltyRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.LoyaltyTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.LoyaltyTransaction
	for i := len(r.s.loyaltyTxs) - 1; i >= 0; i-- {
		if r.s.loyaltyTxs[i].CustomerID == customerID {
			all = append(all, r.s.loyaltyTxs[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	out := make([]*entity.LoyaltyTransaction, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, &all[i])
	}
	return out, nil
}

func (r *loyaltyRepo) LastByCustomer(customerID string) (*entity.LoyaltyTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := len(r.s.loyaltyTxs) - 1; i >= 0; i-- {
		if r.s.loyaltyTxs[i].CustomerID == customerID {
			t := r.s.loyaltyTxs[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *loyaltyRepo) ListTiers() ([]*entity.LoyaltyTier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.LoyaltyTier, 0, len(r.s.tiers))
	for i := range r.s.tiers {
		t := r.s.tiers[i]
		out = append(out, &t)
	}
	return out, nil
}

// --- ventas ---

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.sales {
		if other.SaleNumber == sale.SaleNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.saleItems[item.SaleID] = append(r.s.saleItems[item.SaleID], *item)
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sale, ok := r.s.sales[id]; ok {
		return &sale, nil
	}
	return nil, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := r.s.saleItems[saleID]
	out := make([]*entity.SaleItem, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out, nil
}

func (r *saleRepo) Update(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) ListCompletedByShift(shiftID string) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Sale
	for _, sale := range r.s.sales {
		if sale.ShiftID == shiftID && sale.Status == entity.SaleStatusCompleted {
			all = append(all, sale)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	out := make([]*entity.Sale, 0, len(all))
	for i := range all {
		out = append(out, &all[i])
	}
	return out, nil
}

// --- descuentos ---

type discountRepo struct{ s *Store }

func (r *discountRepo) Create(d *entity.Discount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.discountsByCode[d.Code]; ok {
		return domain.ErrDuplicate
	}
	r.s.discounts[d.ID] = *d
	r.s.discountsByCode[d.Code] = d.ID
	return nil
}

func (r *discountRepo) GetByCode(code string) (*entity.Discount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.discountsByCode[code]
	if !ok {
		return nil, nil
	}
	d := r.s.discounts[id]
	return &d, nil
}

func (r *discountRepo) IncrementUsage(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.discounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.TimesUsed++
	d.UpdatedAt = time.Now()
	r.s.discounts[id] = d
	return nil
}

func (r *discountRepo) Update(d *entity.Discount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.discounts[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.discounts[d.ID] = *d
	return nil
}

// --- turnos ---

type shiftRepo struct{ s *Store }

func (r *shiftRepo) Create(shift *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[shift.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.shifts[shift.ID] = *shift
	return nil
}

func (r *shiftRepo) GetByID(id string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if shift, ok := r.s.shifts[id]; ok {
		return &shift, nil
	}
	return nil, nil
}

func (r *shiftRepo) GetOpenByCashier(cashierID string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, shift := range r.s.shifts {
		if shift.CashierID == cashierID && shift.Status == entity.ShiftStatusOpen {
			return &shift, nil
		}
	}
	return nil, nil
}

func (r *shiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	return r.GetByID(id)
}

func (r *shiftRepo) Update(shift *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[shift.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.shifts[shift.ID] = *shift
	return nil
}

// --- pagos ---

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[p.SaleID] = append(r.s.payments[p.SaleID], *p)
	return nil
}

func (r *paymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	payments := r.s.payments[saleID]
	out := make([]*entity.Payment, 0, len(payments))
	for i := range payments {
		p := payments[i]
		out = append(out, &p)
	}
	return out, nil
}

// --- usuarios ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usersByUsername[u.Username]; ok {
		return domain.ErrDuplicate
	}
	r.s.users[u.ID] = *u
	r.s.usersByUsername[u.Username] = u.ID
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByUsername[username]
	if !ok {
		return nil, nil
	}
	u := r.s.users[id]
	return &u, nil
}
