package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"foodparadise/internal/model"
)

// StatsRepository returns fast, possibly stale, row counts.
type StatsRepository interface {
	EstimatedUsers(ctx context.Context) (int64, error)
	EstimatedMenuItems(ctx context.Context) (int64, error)
	EstimatedPayments(ctx context.Context) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) EstimatedUsers(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx, &model.User{})
}

func (r *statsRepository) EstimatedMenuItems(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx, &model.MenuItem{})
}

func (r *statsRepository) EstimatedPayments(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx, &model.Payment{})
}

// estimatedCount reads the planner's row estimate for the table of value and falls back
// to an exact COUNT(*) when the dialect has none or the estimate is not positive.
func (r *statsRepository) estimatedCount(ctx context.Context, value interface{}) (int64, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(value); err != nil {
		return 0, fmt.Errorf("parse model: %w", err)
	}
	table := stmt.Schema.Table

	var query string
	switch r.db.Dialector.Name() {
	case "mysql":
		query = "SELECT TABLE_ROWS FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?"
	case "postgres":
		query = "SELECT reltuples::bigint FROM pg_class WHERE relname = ?"
	}

	if query != "" {
		var estimate sql.NullInt64
		err := r.db.WithContext(ctx).Raw(query, table).Row().Scan(&estimate)
		if err == nil && estimate.Valid && estimate.Int64 > 0 {
			return estimate.Int64, nil
		}
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(value).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}
