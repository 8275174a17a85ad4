// Package mocks provides hand-written test doubles for the usecase
// interfaces. Each mock behaves as an in-memory store by default; any
// behavior can be overridden per test through the exported Func fields.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/usecase"
)

// StubTransactionRepository is a mock implementation of TransactionRepository.
type StubTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc        func(ctx context.Context, uow usecase.UnitOfWork, txn *domain.Transaction) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewStubTransactionRepository() *StubTransactionRepository {
	return &StubTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *StubTransactionRepository) Create(ctx context.Context, uow usecase.UnitOfWork, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uow, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *StubTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *StubTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

// Stored returns the transaction persisted under id, or nil.
func (m *StubTransactionRepository) Stored(id string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions[id]
}

// Count returns the number of stored transactions.
func (m *StubTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// StubBillRepository is a mock implementation of BillRepository.
type StubBillRepository struct {
	mu    sync.RWMutex
	bills map[string]*domain.Bill

	CreateFunc        func(ctx context.Context, uow usecase.UnitOfWork, bill *domain.Bill) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Bill, error)
	ListByAccountFunc func(ctx context.Context, accountID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error)
	UpdateFunc        func(ctx context.Context, bill *domain.Bill) error
	DeleteFunc        func(ctx context.Context, id string) error
	StatsFunc         func(ctx context.Context, accountID string) (*domain.BillStats, error)
	MarkOverdueFunc   func(ctx context.Context, now time.Time) ([]string, error)
}

func NewStubBillRepository() *StubBillRepository {
	return &StubBillRepository{
		bills: make(map[string]*domain.Bill),
	}
}

func (m *StubBillRepository) Create(ctx context.Context, uow usecase.UnitOfWork, bill *domain.Bill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uow, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[bill.ID] = bill
	return nil
}

func (m *StubBillRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bill, ok := m.bills[id]; ok {
		return bill, nil
	}
	return nil, domain.ErrBillNotFound
}

func (m *StubBillRepository) ListByAccount(ctx context.Context, accountID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Bill
	for _, bill := range m.bills {
		if bill.AccountID != accountID {
			continue
		}
		if status != "" && bill.Status != status {
			continue
		}
		out = append(out, bill)
	}
	return out, nil
}

func (m *StubBillRepository) Update(ctx context.Context, bill *domain.Bill) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bills[bill.ID]; !ok {
		return domain.ErrBillNotFound
	}
	m.bills[bill.ID] = bill
	return nil
}

func (m *StubBillRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bills[id]; !ok {
		return domain.ErrBillNotFound
	}
	delete(m.bills, id)
	return nil
}

func (m *StubBillRepository) Stats(ctx context.Context, accountID string) (*domain.BillStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, accountID)
	}
	return &domain.BillStats{}, nil
}

func (m *StubBillRepository) MarkOverdue(ctx context.Context, now time.Time) ([]string, error) {
	if m.MarkOverdueFunc != nil {
		return m.MarkOverdueFunc(ctx, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var accounts []string
	for _, bill := range m.bills {
		if bill.Status == domain.BillStatusPending && bill.DueDate.Before(now) {
			bill.Status = domain.BillStatusOverdue
			accounts = append(accounts, bill.AccountID)
		}
	}
	return accounts, nil
}

// Stored returns the bill persisted under id, or nil.
func (m *StubBillRepository) Stored(id string) *domain.Bill {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bills[id]
}

// Count returns the number of stored bills.
func (m *StubBillRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bills)
}

// StubUnitOfWork records commit/rollback calls.
type StubUnitOfWork struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (u *StubUnitOfWork) Commit(ctx context.Context) error {
	if u.CommitFunc != nil {
		return u.CommitFunc(ctx)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Committed = true
	return nil
}

func (u *StubUnitOfWork) Rollback(ctx context.Context) error {
	if u.RollbackFunc != nil {
		return u.RollbackFunc(ctx)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.Committed {
		u.RolledBack = true
	}
	return nil
}

// StubTransactionManager hands out units of work.
type StubTransactionManager struct {
	mu    sync.Mutex
	Units []*StubUnitOfWork

	BeginFunc func(ctx context.Context) (usecase.UnitOfWork, error)
}

func NewStubTransactionManager() *StubTransactionManager {
	return &StubTransactionManager{}
}

func (m *StubTransactionManager) Begin(ctx context.Context) (usecase.UnitOfWork, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	uow := &StubUnitOfWork{}
	m.Units = append(m.Units, uow)
	return uow, nil
}

// StubIDGenerator generates sequential IDs.
type StubIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "id-" + string(rune('0'+g.next%10)) + "-" + time.Now().Format("150405.000000")
}

// StubExtractor returns a fixed ParsedMessage.
type StubExtractor struct {
	ExtractFunc func(text string) domain.ParsedMessage
}

func (e *StubExtractor) Extract(text string) domain.ParsedMessage {
	if e.ExtractFunc != nil {
		return e.ExtractFunc(text)
	}
	return domain.ParsedMessage{RawText: text}
}

// StubCache is an in-memory Cache.
type StubCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewStubCache() *StubCache {
	return &StubCache{entries: make(map[string][]byte)}
}

func (c *StubCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return nil, context.Canceled // any non-nil error reads as a miss
}

func (c *StubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.SetFunc != nil {
		return c.SetFunc(ctx, key, value, ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *StubCache) Delete(ctx context.Context, key string) error {
	if c.DeleteFunc != nil {
		return c.DeleteFunc(ctx, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Has reports whether key is present.
func (c *StubCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// StubRetrier runs the operation once unless overridden.
type StubRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (r *StubRetrier) Retry(ctx context.Context, operation func() error) error {
	if r.RetryFunc != nil {
		return r.RetryFunc(ctx, operation)
	}
	return operation()
}
