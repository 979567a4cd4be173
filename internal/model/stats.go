package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueSummary is the admin dashboard headline. Counts may be estimates, Revenue is exact.
type RevenueSummary struct {
	Users     int64           `json:"users"`
	MenuItems int64           `json:"menuItems"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// MenuRef is the menu context joined onto a purchased item.
type MenuRef struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// OrderBreakdownRow is one purchased menu item of one payment.
// MenuItem is nil when the id no longer matches a menu item.
type OrderBreakdownRow struct {
	PaymentID  uuid.UUID       `json:"paymentId"`
	Email      string          `json:"email"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
	Position   int             `json:"position"`
	MenuItemID string          `json:"menuItemId"`
	MenuItem   *MenuRef        `json:"menuItem"`
}

// CategoryStat rolls breakdown rows up per menu category.
type CategoryStat struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CategoryBreakdown is the category rollup plus the number of rows without a menu match.
type CategoryBreakdown struct {
	Categories []CategoryStat `json:"categories"`
	Unmatched  int64          `json:"unmatched"`
}
