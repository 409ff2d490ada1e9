package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// TransactionManager runs a unit of work in a single database transaction.
// Repositories called with the context handed to fn join that transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// GORMTransactionManager is a GORM implementation of TransactionManager.
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager creates a new instance of GORMTransactionManager.
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise.
func (m *GORMTransactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// GetDB returns the transaction stored in ctx, or the root handle.
func GetDB(ctx context.Context, root *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return root.WithContext(ctx)
}

// forUpdate locks selected rows until the surrounding transaction ends.
// SQLite has no row locks and ignores the clause.
var forUpdate = clause.Locking{Strength: "UPDATE"}
