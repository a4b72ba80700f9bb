// Package storage owns all entity state. Every other component goes
// through the Store interface; nothing reaches around it.
package storage

import (
	"context"
	"errors"
	"time"

	"ranchbook/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Store is the persistence contract. Two implementations exist: Postgres
// (GORM) for production and Memory for tests and database-less runs.
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	DeactivateUser(ctx context.Context, id string) error
	TouchUserLastActive(ctx context.Context, id string) error

	// Livestock
	GetAllLivestock(ctx context.Context) ([]models.Livestock, error)
	GetLivestock(ctx context.Context, id int) (*models.Livestock, error)
	GetLivestockByTagID(ctx context.Context, tagID string) (*models.Livestock, error)
	CreateLivestock(ctx context.Context, animal *models.Livestock) (*models.Livestock, error)
	UpdateLivestock(ctx context.Context, id int, updates models.LivestockUpdate) (*models.Livestock, error)
	DeleteLivestock(ctx context.Context, id int) error

	// Transactions
	GetAllTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int) (*models.Transaction, error)
	GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int, updates models.TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error

	// Inventory
	GetAllInventory(ctx context.Context) ([]models.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id int) (*models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int, updates models.InventoryItemUpdate) (*models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int) error

	// Health records (append-only)
	GetAllHealthRecords(ctx context.Context) ([]models.HealthRecord, error)
	GetHealthRecordsByLivestock(ctx context.Context, livestockID int) ([]models.HealthRecord, error)
	CreateHealthRecord(ctx context.Context, record *models.HealthRecord) (*models.HealthRecord, error)

	// Sessions
	CreateSession(ctx context.Context, sess *models.Session) error
	GetSession(ctx context.Context, jti string) (*models.Session, error)
	TouchSession(ctx context.Context, jti string, expiresAt time.Time) error
	RevokeSession(ctx context.Context, jti string) error

	// Audit log
	AppendAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)
}
