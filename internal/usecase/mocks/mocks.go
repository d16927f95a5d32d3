package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
)

// MockEntryRepository is a mock implementation of EntryRepository.
// Entries written through CreateTx stay staged on the transaction until it
// commits, so tests can observe partial-failure behavior.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc           func(ctx context.Context, entry *domain.Entry) error
	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Entry, error)
	GetByReferenceFunc   func(ctx context.Context, reference string) (*domain.Entry, error)
	ListFunc             func(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error)
	UpdateFunc           func(ctx context.Context, entry *domain.Entry) error
	DeleteFunc           func(ctx context.Context, id string) error
	SumIncomeFunc        func(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error)
	SumExpenseFunc       func(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error)
	LockChannelMonthFunc func(ctx context.Context, tx usecase.Transaction, month domain.Month, channel domain.Channel) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, entry)
	}
	if mt, ok := tx.(*MockTransaction); ok {
		mt.onCommit(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.entries[entry.ID] = entry
		})
		return nil
	}
	return m.Create(ctx, entry)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByReference(ctx context.Context, reference string) (*domain.Entry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.Reference == reference {
			return e, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if filter.Month != nil && e.Month != *filter.Month {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func (m *MockEntryRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

// SumIncome mirrors the repository's aggregation: the entry's per-channel
// amount when recorded, otherwise its total when the primary channel
// matches.
func (m *MockEntryRepository) SumIncome(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	if m.SumIncomeFunc != nil {
		return m.SumIncomeFunc(ctx, month, channel)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.Month != month {
			continue
		}
		if !e.Amounts.IsEmpty() {
			sum = sum.Add(e.Amounts.Get(channel))
			continue
		}
		if e.PrimaryChannel == channel {
			sum = sum.Add(e.TotalAmount)
		}
	}
	return sum, nil
}

func (m *MockEntryRepository) SumExpense(ctx context.Context, month domain.Month, channel domain.Channel) (decimal.Decimal, error) {
	if m.SumExpenseFunc != nil {
		return m.SumExpenseFunc(ctx, month, channel)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.Month == month && e.ExpenseChannel == channel {
			sum = sum.Add(e.ExpenseAmount)
		}
	}
	return sum, nil
}

func (m *MockEntryRepository) SummarizeMonth(ctx context.Context, month domain.Month) (*domain.MonthTotals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := &domain.MonthTotals{}
	for _, e := range m.entries {
		if e.Month != month {
			continue
		}
		totals.TotalAmount = totals.TotalAmount.Add(e.TotalAmount)
		totals.TotalExpenses = totals.TotalExpenses.Add(e.ExpenseAmount)
		totals.TransactionCharges = totals.TransactionCharges.Add(e.TransactionCharges)
		totals.SalaryAmount = totals.SalaryAmount.Add(e.SalaryAmount)
		totals.Allowance = totals.Allowance.Add(e.Allowance)
		totals.EntryCount++
	}
	return totals, nil
}

func (m *MockEntryRepository) SummarizeByPrimaryChannel(ctx context.Context, month domain.Month) ([]*domain.ChannelNet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byChannel := make(map[domain.Channel]*domain.ChannelNet)
	for _, e := range m.entries {
		if e.Month != month {
			continue
		}
		if e.PrimaryChannel.Valid() {
			net, ok := byChannel[e.PrimaryChannel]
			if !ok {
				net = &domain.ChannelNet{Channel: e.PrimaryChannel}
				byChannel[e.PrimaryChannel] = net
			}
			net.TotalAmount = net.TotalAmount.Add(e.TotalAmount)
		}
		if e.ExpenseChannel.Valid() {
			net, ok := byChannel[e.ExpenseChannel]
			if !ok {
				net = &domain.ChannelNet{Channel: e.ExpenseChannel}
				byChannel[e.ExpenseChannel] = net
			}
			net.TotalExpenses = net.TotalExpenses.Add(e.ExpenseAmount)
		}
	}
	var nets []*domain.ChannelNet
	for _, net := range byChannel {
		nets = append(nets, net)
	}
	sort.Slice(nets, func(i, j int) bool {
		return nets[i].Channel < nets[j].Channel
	})
	return nets, nil
}

func (m *MockEntryRepository) ListMonths(ctx context.Context) ([]domain.Month, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[domain.Month]bool)
	var months []domain.Month
	for _, e := range m.entries {
		if !seen[e.Month] {
			seen[e.Month] = true
			months = append(months, e.Month)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i] > months[j]
	})
	return months, nil
}

func (m *MockEntryRepository) LockChannelMonth(ctx context.Context, tx usecase.Transaction, month domain.Month, channel domain.Channel) error {
	if m.LockChannelMonthFunc != nil {
		return m.LockChannelMonthFunc(ctx, tx, month, channel)
	}
	return nil
}

func (m *MockEntryRepository) TxSums(tx usecase.Transaction) usecase.ChannelSums {
	return m
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[string]*domain.Purchase

	CreateFunc         func(ctx context.Context, purchase *domain.Purchase) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Purchase, error)
	ListFunc           func(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error)
	UpdateApprovalFunc func(ctx context.Context, id string, status domain.ApprovalStatus, approvedBy string, updatedAt time.Time) error
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{
		purchases: make(map[string]*domain.Purchase),
	}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, purchase)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[purchase.ID] = purchase
	return nil
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.purchases[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPurchaseNotFound
}

func (m *MockPurchaseRepository) List(ctx context.Context, filter usecase.PurchaseFilter) ([]*domain.Purchase, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var purchases []*domain.Purchase
	for _, p := range m.purchases {
		if filter.Month != nil && p.Month != *filter.Month {
			continue
		}
		if filter.Supplier != "" && p.SupplierName != filter.Supplier {
			continue
		}
		if filter.Status != nil && p.ApprovalStatus != *filter.Status {
			continue
		}
		purchases = append(purchases, p)
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].DateOfPurchase.After(purchases[j].DateOfPurchase)
	})
	return purchases, nil
}

func (m *MockPurchaseRepository) UpdateApproval(ctx context.Context, id string, status domain.ApprovalStatus, approvedBy string, updatedAt time.Time) error {
	if m.UpdateApprovalFunc != nil {
		return m.UpdateApprovalFunc(ctx, id, status, approvedBy, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.purchases[id]
	if !ok {
		return domain.ErrPurchaseNotFound
	}
	p.ApprovalStatus = status
	p.ApprovedBy = approvedBy
	p.UpdatedAt = updatedAt
	return nil
}

func (m *MockPurchaseRepository) SummarizeByItem(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byItem := make(map[domain.ItemType]*domain.ItemRollup)
	for _, p := range m.purchases {
		if p.ApprovalStatus != domain.ApprovalApproved {
			continue
		}
		if month != nil && p.Month != *month {
			continue
		}
		r, ok := byItem[p.ItemType]
		if !ok {
			r = &domain.ItemRollup{ItemType: p.ItemType}
			byItem[p.ItemType] = r
		}
		r.TotalKg = r.TotalKg.Add(p.QtyKg)
		r.Total = r.Total.Add(p.TotalCost)
	}
	var rollups []*domain.ItemRollup
	for _, r := range byItem {
		r.TotalTons = domain.TonsFromKg(r.TotalKg)
		rollups = append(rollups, r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].ItemType < rollups[j].ItemType
	})
	return rollups, nil
}

func (m *MockPurchaseRepository) SummarizeBySupplier(ctx context.Context, month *domain.Month) ([]*domain.SupplierRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bySupplier := make(map[string]*domain.SupplierRollup)
	for _, p := range m.purchases {
		if p.ApprovalStatus != domain.ApprovalApproved {
			continue
		}
		if month != nil && p.Month != *month {
			continue
		}
		r, ok := bySupplier[p.SupplierName]
		if !ok {
			r = &domain.SupplierRollup{Supplier: p.SupplierName}
			bySupplier[p.SupplierName] = r
		}
		r.TotalKg = r.TotalKg.Add(p.QtyKg)
		r.Total = r.Total.Add(p.TotalCost)
	}
	var rollups []*domain.SupplierRollup
	for _, r := range bySupplier {
		r.TotalTons = domain.TonsFromKg(r.TotalKg)
		rollups = append(rollups, r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Supplier < rollups[j].Supplier
	})
	return rollups, nil
}

func (m *MockPurchaseRepository) MonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byMonth := make(map[domain.Month]*domain.MonthlyRollup)
	for _, p := range m.purchases {
		if p.ApprovalStatus != domain.ApprovalApproved {
			continue
		}
		r, ok := byMonth[p.Month]
		if !ok {
			r = &domain.MonthlyRollup{Month: p.Month}
			byMonth[p.Month] = r
		}
		r.TotalKg = r.TotalKg.Add(p.QtyKg)
		r.Total = r.Total.Add(p.TotalCost)
		r.Count++
	}
	var rollups []*domain.MonthlyRollup
	for _, r := range byMonth {
		r.TotalTons = domain.TonsFromKg(r.TotalKg)
		rollups = append(rollups, r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Month > rollups[j].Month
	})
	return rollups, nil
}

func (m *MockPurchaseRepository) OverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rollup := &domain.MonthlyRollup{}
	if month != nil {
		rollup.Month = *month
	}
	for _, p := range m.purchases {
		if p.ApprovalStatus != domain.ApprovalApproved {
			continue
		}
		if month != nil && p.Month != *month {
			continue
		}
		rollup.TotalKg = rollup.TotalKg.Add(p.QtyKg)
		rollup.Total = rollup.Total.Add(p.TotalCost)
		rollup.Count++
	}
	rollup.TotalTons = domain.TonsFromKg(rollup.TotalKg)
	return rollup, nil
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.Sale

	CreateFunc func(ctx context.Context, sale *domain.Sale) error
	ListFunc   func(ctx context.Context, filter usecase.SaleFilter) ([]*domain.Sale, error)
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]*domain.Sale),
	}
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) List(ctx context.Context, filter usecase.SaleFilter) ([]*domain.Sale, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sales []*domain.Sale
	for _, sl := range m.sales {
		if filter.Month != nil && sl.Month != *filter.Month {
			continue
		}
		sales = append(sales, sl)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].DateOfSale.After(sales[j].DateOfSale)
	})
	return sales, nil
}

func (m *MockSaleRepository) SummarizeByItem(ctx context.Context, month *domain.Month) ([]*domain.ItemRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byItem := make(map[domain.ItemType]*domain.ItemRollup)
	for _, sl := range m.sales {
		if month != nil && sl.Month != *month {
			continue
		}
		r, ok := byItem[sl.ItemType]
		if !ok {
			r = &domain.ItemRollup{ItemType: sl.ItemType}
			byItem[sl.ItemType] = r
		}
		r.TotalKg = r.TotalKg.Add(sl.QtyKg)
		r.Total = r.Total.Add(sl.TotalAmount)
	}
	var rollups []*domain.ItemRollup
	for _, r := range byItem {
		r.TotalTons = domain.TonsFromKg(r.TotalKg)
		rollups = append(rollups, r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].ItemType < rollups[j].ItemType
	})
	return rollups, nil
}

func (m *MockSaleRepository) MonthlyTotals(ctx context.Context) ([]*domain.MonthlyRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byMonth := make(map[domain.Month]*domain.MonthlyRollup)
	for _, sl := range m.sales {
		r, ok := byMonth[sl.Month]
		if !ok {
			r = &domain.MonthlyRollup{Month: sl.Month}
			byMonth[sl.Month] = r
		}
		r.TotalKg = r.TotalKg.Add(sl.QtyKg)
		r.Total = r.Total.Add(sl.TotalAmount)
		r.Count++
	}
	var rollups []*domain.MonthlyRollup
	for _, r := range byMonth {
		r.TotalTons = domain.TonsFromKg(r.TotalKg)
		rollups = append(rollups, r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Month > rollups[j].Month
	})
	return rollups, nil
}

func (m *MockSaleRepository) OverallTotals(ctx context.Context, month *domain.Month) (*domain.MonthlyRollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rollup := &domain.MonthlyRollup{}
	if month != nil {
		rollup.Month = *month
	}
	for _, sl := range m.sales {
		if month != nil && sl.Month != *month {
			continue
		}
		rollup.TotalKg = rollup.TotalKg.Add(sl.QtyKg)
		rollup.Total = rollup.Total.Add(sl.TotalAmount)
		rollup.Count++
	}
	rollup.TotalTons = domain.TonsFromKg(rollup.TotalKg)
	return rollup, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction. Writes staged
// through onCommit apply on Commit and vanish on Rollback.
type MockTransaction struct {
	mu     sync.Mutex
	staged []func()
	done   bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) onCommit(apply func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged = append(m.staged, apply)
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return nil
	}
	m.done = true
	for _, apply := range m.staged {
		apply()
	}
	m.staged = nil
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done = true
	m.staged = nil
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier. It runs the operation
// once with no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	GenerateFunc func(user *domain.User) (string, error)
}

func NewMockTokenIssuer() *MockTokenIssuer {
	return &MockTokenIssuer{}
}

func (m *MockTokenIssuer) Generate(user *domain.User) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(user)
	}
	return "mock-token-" + user.ID, nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
