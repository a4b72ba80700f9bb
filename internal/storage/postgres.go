package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ranchbook/internal/models"
)

// Postgres is the GORM-backed Store. It expects the *gorm.DB to have been
// opened with TranslateError so duplicate keys surface as
// gorm.ErrDuplicatedKey.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// AutoMigrate creates or updates the schema for every entity.
func (p *Postgres) AutoMigrate() error {
	return p.db.AutoMigrate(
		&models.User{},
		&models.Livestock{},
		&models.Transaction{},
		&models.InventoryItem{},
		&models.HealthRecord{},
		&models.Session{},
		&models.AuditLog{},
	)
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// Users

func (p *Postgres) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := p.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting user")
	}
	return &u, nil
}

func (p *Postgres) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := p.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, translate(err, "listing users")
	}
	return users, nil
}

func (p *Postgres) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	var existing models.User
	err := p.db.WithContext(ctx).First(&existing, "id = ?", user.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user.CreatedAt = now
		user.UpdatedAt = now
		user.LastActiveAt = now
		user.IsActive = true
		if err := p.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, translate(err, "creating user")
		}
		return user, nil
	case err != nil:
		return nil, translate(err, "upserting user")
	}
	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.ProfileImageURL = user.ProfileImageURL
	existing.Role = user.Role
	existing.UpdatedAt = now
	if err := p.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, translate(err, "upserting user")
	}
	return &existing, nil
}

func (p *Postgres) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var u models.User
	if err := p.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting user")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	if err := p.db.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, translate(err, "updating user role")
	}
	return &u, nil
}

func (p *Postgres) DeactivateUser(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return translate(res.Error, "deactivating user")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deactivating user: %w", ErrNotFound)
	}
	return nil
}

func (p *Postgres) TouchUserLastActive(ctx context.Context, id string) error {
	err := p.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("last_active_at", time.Now()).Error
	if err != nil {
		return translate(err, "touching last active")
	}
	return nil
}

// Livestock

func (p *Postgres) GetAllLivestock(ctx context.Context) ([]models.Livestock, error) {
	animals := make([]models.Livestock, 0)
	if err := p.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&animals).Error; err != nil {
		return nil, translate(err, "listing livestock")
	}
	return animals, nil
}

func (p *Postgres) GetLivestock(ctx context.Context, id int) (*models.Livestock, error) {
	var animal models.Livestock
	if err := p.db.WithContext(ctx).First(&animal, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting livestock")
	}
	return &animal, nil
}

func (p *Postgres) GetLivestockByTagID(ctx context.Context, tagID string) (*models.Livestock, error) {
	var animal models.Livestock
	if err := p.db.WithContext(ctx).First(&animal, "tag_id = ?", tagID).Error; err != nil {
		return nil, translate(err, "getting livestock by tag")
	}
	return &animal, nil
}

func (p *Postgres) CreateLivestock(ctx context.Context, animal *models.Livestock) (*models.Livestock, error) {
	now := time.Now()
	animal.IsActive = true
	animal.CreatedAt = now
	animal.UpdatedAt = now
	if err := p.db.WithContext(ctx).Create(animal).Error; err != nil {
		return nil, translate(err, "creating livestock")
	}
	return animal, nil
}

func (p *Postgres) UpdateLivestock(ctx context.Context, id int, updates models.LivestockUpdate) (*models.Livestock, error) {
	var animal models.Livestock
	if err := p.db.WithContext(ctx).First(&animal, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting livestock")
	}
	applyLivestockUpdate(&animal, updates)
	animal.UpdatedAt = time.Now()
	if err := p.db.WithContext(ctx).Save(&animal).Error; err != nil {
		return nil, translate(err, "updating livestock")
	}
	return &animal, nil
}

// DeleteLivestock soft-deletes. Repeat deletes and absent ids are no-ops.
func (p *Postgres) DeleteLivestock(ctx context.Context, id int) error {
	err := p.db.WithContext(ctx).Model(&models.Livestock{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error
	if err != nil {
		return translate(err, "deleting livestock")
	}
	return nil
}

// Transactions

func (p *Postgres) GetAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	txns := make([]models.Transaction, 0)
	if err := p.db.WithContext(ctx).Order("date desc, id desc").Find(&txns).Error; err != nil {
		return nil, translate(err, "listing transactions")
	}
	return txns, nil
}

func (p *Postgres) GetTransaction(ctx context.Context, id int) (*models.Transaction, error) {
	var txn models.Transaction
	if err := p.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting transaction")
	}
	return &txn, nil
}

func (p *Postgres) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	txns := make([]models.Transaction, 0)
	err := p.db.WithContext(ctx).Where("date >= ? AND date <= ?", start, end).
		Order("date desc, id desc").Find(&txns).Error
	if err != nil {
		return nil, translate(err, "listing transactions by date range")
	}
	return txns, nil
}

func (p *Postgres) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	txn.CreatedAt = time.Now()
	if err := p.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, translate(err, "creating transaction")
	}
	return txn, nil
}

func (p *Postgres) UpdateTransaction(ctx context.Context, id int, updates models.TransactionUpdate) (*models.Transaction, error) {
	var txn models.Transaction
	if err := p.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting transaction")
	}
	applyTransactionUpdate(&txn, updates)
	if err := p.db.WithContext(ctx).Save(&txn).Error; err != nil {
		return nil, translate(err, "updating transaction")
	}
	return &txn, nil
}

func (p *Postgres) DeleteTransaction(ctx context.Context, id int) error {
	if err := p.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error; err != nil {
		return translate(err, "deleting transaction")
	}
	return nil
}

// Inventory

func (p *Postgres) GetAllInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items := make([]models.InventoryItem, 0)
	if err := p.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, translate(err, "listing inventory")
	}
	return items, nil
}

func (p *Postgres) GetInventoryItem(ctx context.Context, id int) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := p.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting inventory item")
	}
	return &item, nil
}

func (p *Postgres) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := p.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, translate(err, "creating inventory item")
	}
	return item, nil
}

func (p *Postgres) UpdateInventoryItem(ctx context.Context, id int, updates models.InventoryItemUpdate) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := p.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting inventory item")
	}
	applyInventoryItemUpdate(&item, updates)
	item.UpdatedAt = time.Now()
	if err := p.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, translate(err, "updating inventory item")
	}
	return &item, nil
}

func (p *Postgres) DeleteInventoryItem(ctx context.Context, id int) error {
	if err := p.db.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
		return translate(err, "deleting inventory item")
	}
	return nil
}

// Health records

func (p *Postgres) GetAllHealthRecords(ctx context.Context) ([]models.HealthRecord, error) {
	records := make([]models.HealthRecord, 0)
	if err := p.db.WithContext(ctx).Order("date desc, id desc").Find(&records).Error; err != nil {
		return nil, translate(err, "listing health records")
	}
	return records, nil
}

func (p *Postgres) GetHealthRecordsByLivestock(ctx context.Context, livestockID int) ([]models.HealthRecord, error) {
	records := make([]models.HealthRecord, 0)
	err := p.db.WithContext(ctx).Where("livestock_id = ?", livestockID).
		Order("date desc, id desc").Find(&records).Error
	if err != nil {
		return nil, translate(err, "listing health records by livestock")
	}
	return records, nil
}

func (p *Postgres) CreateHealthRecord(ctx context.Context, record *models.HealthRecord) (*models.HealthRecord, error) {
	record.CreatedAt = time.Now()
	if err := p.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, translate(err, "creating health record")
	}
	return record, nil
}

// Sessions

func (p *Postgres) CreateSession(ctx context.Context, sess *models.Session) error {
	if err := p.db.WithContext(ctx).Create(sess).Error; err != nil {
		return translate(err, "creating session")
	}
	return nil
}

func (p *Postgres) GetSession(ctx context.Context, jti string) (*models.Session, error) {
	var sess models.Session
	if err := p.db.WithContext(ctx).First(&sess, "jti = ?", jti).Error; err != nil {
		return nil, translate(err, "getting session")
	}
	return &sess, nil
}

func (p *Postgres) TouchSession(ctx context.Context, jti string, expiresAt time.Time) error {
	err := p.db.WithContext(ctx).Model(&models.Session{}).Where("jti = ?", jti).
		Update("expires_at", expiresAt).Error
	if err != nil {
		return translate(err, "touching session")
	}
	return nil
}

func (p *Postgres) RevokeSession(ctx context.Context, jti string) error {
	err := p.db.WithContext(ctx).Model(&models.Session{}).Where("jti = ?", jti).
		Update("revoked_at", time.Now()).Error
	if err != nil {
		return translate(err, "revoking session")
	}
	return nil
}

// Audit log

func (p *Postgres) AppendAuditLog(ctx context.Context, entry *models.AuditLog) error {
	entry.CreatedAt = time.Now()
	if err := p.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translate(err, "appending audit log")
	}
	return nil
}

func (p *Postgres) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	logs := make([]models.AuditLog, 0)
	if err := p.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, translate(err, "listing audit logs")
	}
	return logs, nil
}

var _ Store = (*Postgres)(nil)
