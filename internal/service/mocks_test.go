package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"foodparadise/internal/model"
	"foodparadise/internal/processor"
	"foodparadise/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (int64, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil && item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCartRepository) ListByEmail(ctx context.Context, email string) ([]model.CartItem, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) DeleteOwned(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	args := m.Called(ctx, id, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockMenuRepository is a mock implementation of MenuRepository.
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil && item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockMenuRepository) CreateBatch(ctx context.Context, items []model.MenuItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockMenuRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuRepository) ListReviews(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockMenuRepository) CreateReviews(ctx context.Context, reviews []model.Review) error {
	args := m.Called(ctx, reviews)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) Breakdown(ctx context.Context) ([]model.OrderBreakdownRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderBreakdownRow), args.Error(1)
}

func (m *MockPaymentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, payments repository.PaymentRepository, carts repository.CartRepository) error) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStatsRepository is a mock implementation of StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) EstimatedUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) EstimatedMenuItems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) EstimatedPayments(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProcessor is a mock implementation of processor.Processor.
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*processor.Intent, error) {
	args := m.Called(ctx, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processor.Intent), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// memLedger keeps payments and cart items in memory. It implements both PaymentRepository
// and CartRepository; WithTransaction restores the previous state when fn fails.
type memLedger struct {
	mu         sync.Mutex
	payments   []model.Payment
	carts      map[uuid.UUID]model.CartItem
	failInsert error
	failDelete error
}

func newMemLedger(cartIDs ...uuid.UUID) *memLedger {
	l := &memLedger{carts: make(map[uuid.UUID]model.CartItem)}
	for _, id := range cartIDs {
		l.carts[id] = model.CartItem{ID: id}
	}
	return l
}

func (l *memLedger) Create(ctx context.Context, payment *model.Payment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failInsert != nil {
		return l.failInsert
	}
	l.payments = append(l.payments, *payment)
	return nil
}

func (l *memLedger) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Payment
	for i := len(l.payments) - 1; i >= 0; i-- {
		if l.payments[i].Email == email {
			out = append(out, l.payments[i])
		}
	}
	return out, nil
}

func (l *memLedger) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := decimal.Zero
	for _, p := range l.payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (l *memLedger) Breakdown(ctx context.Context) ([]model.OrderBreakdownRow, error) {
	return nil, nil
}

func (l *memLedger) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failDelete != nil {
		return 0, l.failDelete
	}
	var deleted int64
	for _, id := range ids {
		if _, ok := l.carts[id]; ok {
			delete(l.carts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (l *memLedger) WithTransaction(ctx context.Context, fn func(ctx context.Context, payments repository.PaymentRepository, carts repository.CartRepository) error) error {
	l.mu.Lock()
	payments := append([]model.Payment(nil), l.payments...)
	carts := make(map[uuid.UUID]model.CartItem, len(l.carts))
	for k, v := range l.carts {
		carts[k] = v
	}
	l.mu.Unlock()

	if err := fn(ctx, l, memCarts{l}); err != nil {
		l.mu.Lock()
		l.payments = payments
		l.carts = carts
		l.mu.Unlock()
		return err
	}
	return nil
}

func (l *memLedger) cartCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.carts)
}

// memCarts exposes the cart half of a memLedger as a CartRepository.
type memCarts struct {
	l *memLedger
}

func (c memCarts) Create(ctx context.Context, item *model.CartItem) error {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	c.l.carts[item.ID] = *item
	return nil
}

func (c memCarts) ListByEmail(ctx context.Context, email string) ([]model.CartItem, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	var out []model.CartItem
	for _, item := range c.l.carts {
		if item.Email == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c memCarts) DeleteOwned(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	if item, ok := c.l.carts[id]; ok && item.Email == email {
		delete(c.l.carts, id)
		return 1, nil
	}
	return 0, nil
}

func (c memCarts) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return c.l.DeleteByIDs(ctx, ids)
}
