package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return gormDB, mock
}

func TestCartRepository_DeleteByIDsReportsShortCount(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewCartRepository(gormDB)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `cart_items` WHERE id IN (?,?)")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteByIDs(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteByIDsEmptyIsNoop(t *testing.T) {
	gormDB, mock := newMockDB(t)

	deleted, err := NewCartRepository(gormDB).DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_TotalRevenue(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewPaymentRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM `payments`")).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("25.50"))

	total, err := repo.TotalRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "25.5", total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_CreateWritesLinkRows(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewPaymentRepository(gormDB)

	id := uuid.New()
	payment := &model.Payment{
		ID:       id,
		Email:    "user@example.com",
		Amount:   decimal.RequireFromString("25.50"),
		Currency: "usd",
		CartItems: []model.PaymentCartItem{
			{PaymentID: id, CartItemID: uuid.New()},
			{PaymentID: id, CartItemID: uuid.New()},
		},
		MenuItems: []model.PaymentMenuItem{
			{PaymentID: id, Position: 0, MenuItemID: uuid.NewString()},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payments`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payment_cart_items`")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payment_menu_items`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), payment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_CreateRollsBackOnLinkFailure(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewPaymentRepository(gormDB)

	id := uuid.New()
	payment := &model.Payment{
		ID:        id,
		Email:     "user@example.com",
		Amount:    decimal.NewFromInt(10),
		Currency:  "usd",
		CartItems: []model.PaymentCartItem{{PaymentID: id, CartItemID: uuid.New()}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payments`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payment_cart_items`")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	assert.Error(t, repo.Create(context.Background(), payment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_BreakdownLeftJoinsMenu(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewPaymentRepository(gormDB)

	paymentID := uuid.New()
	matched, gone := uuid.NewString(), uuid.NewString()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	columns := []string{"payment_id", "email", "amount", "created_at", "position", "menu_item_id",
		"menu_name", "category", "menu_price"}
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN menu_items AS m ON m.id = pmi.menu_item_id")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(paymentID.String(), "user@example.com", "25.50", at, 0, matched, "Caesar Salad", "salad", "12.50").
			AddRow(paymentID.String(), "user@example.com", "25.50", at, 1, gone, nil, nil, nil))

	rows, err := repo.Breakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, paymentID, rows[0].PaymentID)
	assert.Equal(t, matched, rows[0].MenuItemID)
	require.NotNil(t, rows[0].MenuItem)
	assert.Equal(t, "Caesar Salad", rows[0].MenuItem.Name)
	assert.Equal(t, "salad", rows[0].MenuItem.Category)
	assert.True(t, decimal.RequireFromString("12.50").Equal(rows[0].MenuItem.Price))

	assert.Equal(t, gone, rows[1].MenuItemID)
	assert.Equal(t, 1, rows[1].Position)
	assert.Nil(t, rows[1].MenuItem)
	assert.True(t, decimal.RequireFromString("25.50").Equal(rows[1].Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmailNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))

	user, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_EstimatedCount(t *testing.T) {
	t.Run("uses the planner estimate", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT TABLE_ROWS FROM information_schema.TABLES")).
			WithArgs("users").
			WillReturnRows(sqlmock.NewRows([]string{"TABLE_ROWS"}).AddRow(42))

		n, err := NewStatsRepository(gormDB).EstimatedUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to an exact count", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT TABLE_ROWS FROM information_schema.TABLES")).
			WithArgs("payments").
			WillReturnRows(sqlmock.NewRows([]string{"TABLE_ROWS"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `payments`")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		n, err := NewStatsRepository(gormDB).EstimatedPayments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
