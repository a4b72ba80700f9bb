package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ranchbook/internal/models"
)

// Memory is a mutex-guarded, map-backed Store. It serves tests and
// database-less runs. All returned records are copies.
type Memory struct {
	mu sync.Mutex

	users         map[string]models.User
	livestock     map[int]models.Livestock
	transactions  map[int]models.Transaction
	inventory     map[int]models.InventoryItem
	healthRecords map[int]models.HealthRecord
	sessions      map[string]models.Session
	auditLogs     []models.AuditLog

	nextLivestockID    int
	nextTransactionID  int
	nextInventoryID    int
	nextHealthRecordID int
	nextAuditLogID     int64
}

func NewMemory() *Memory {
	return &Memory{
		users:              make(map[string]models.User),
		livestock:          make(map[int]models.Livestock),
		transactions:       make(map[int]models.Transaction),
		inventory:          make(map[int]models.InventoryItem),
		healthRecords:      make(map[int]models.HealthRecord),
		sessions:           make(map[string]models.Session),
		nextLivestockID:    1,
		nextTransactionID:  1,
		nextInventoryID:    1,
		nextHealthRecordID: 1,
		nextAuditLogID:     1,
	}
}

// Users

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("getting user: %w", ErrNotFound)
	}
	return &u, nil
}

func (m *Memory) GetAllUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (m *Memory) UpsertUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if existing, ok := m.users[user.ID]; ok {
		existing.Email = user.Email
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.ProfileImageURL = user.ProfileImageURL
		existing.Role = user.Role
		existing.UpdatedAt = now
		m.users[user.ID] = existing
		return &existing, nil
	}
	u := *user
	u.IsActive = true
	u.LastActiveAt = now
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = u
	return &u, nil
}

func (m *Memory) UpdateUserRole(_ context.Context, id string, role models.Role) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("getting user: %w", ErrNotFound)
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return &u, nil
}

func (m *Memory) DeactivateUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("deactivating user: %w", ErrNotFound)
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

func (m *Memory) TouchUserLastActive(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastActiveAt = time.Now()
		m.users[id] = u
	}
	return nil
}

// Livestock

func (m *Memory) GetAllLivestock(_ context.Context) ([]models.Livestock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	animals := make([]models.Livestock, 0, len(m.livestock))
	for _, a := range m.livestock {
		if a.IsActive {
			animals = append(animals, a)
		}
	}
	sort.Slice(animals, func(i, j int) bool { return animals[i].ID < animals[j].ID })
	return animals, nil
}

func (m *Memory) GetLivestock(_ context.Context, id int) (*models.Livestock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.livestock[id]
	if !ok {
		return nil, fmt.Errorf("getting livestock: %w", ErrNotFound)
	}
	return &a, nil
}

func (m *Memory) GetLivestockByTagID(_ context.Context, tagID string) (*models.Livestock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.livestock {
		if a.TagID == tagID {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("getting livestock by tag: %w", ErrNotFound)
}

// tagTakenLocked checks tag uniqueness across all rows, soft-deleted
// included. Caller holds the lock.
func (m *Memory) tagTakenLocked(tagID string, excludeID int) bool {
	for _, a := range m.livestock {
		if a.TagID == tagID && a.ID != excludeID {
			return true
		}
	}
	return false
}

func (m *Memory) CreateLivestock(_ context.Context, animal *models.Livestock) (*models.Livestock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tagTakenLocked(animal.TagID, 0) {
		return nil, fmt.Errorf("creating livestock: tag %q: %w", animal.TagID, ErrConflict)
	}
	now := time.Now()
	a := *animal
	a.ID = m.nextLivestockID
	m.nextLivestockID++
	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	m.livestock[a.ID] = a
	return &a, nil
}

func (m *Memory) UpdateLivestock(_ context.Context, id int, updates models.LivestockUpdate) (*models.Livestock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.livestock[id]
	if !ok {
		return nil, fmt.Errorf("getting livestock: %w", ErrNotFound)
	}
	applyLivestockUpdate(&a, updates)
	if m.tagTakenLocked(a.TagID, id) {
		return nil, fmt.Errorf("updating livestock: tag %q: %w", a.TagID, ErrConflict)
	}
	a.UpdatedAt = time.Now()
	m.livestock[id] = a
	return &a, nil
}

func (m *Memory) DeleteLivestock(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.livestock[id]; ok {
		a.IsActive = false
		a.UpdatedAt = time.Now()
		m.livestock[id] = a
	}
	return nil
}

// Transactions

func (m *Memory) GetAllTransactions(_ context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txns := make([]models.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		txns = append(txns, t)
	}
	sortTransactions(txns)
	return txns, nil
}

func sortTransactions(txns []models.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].ID > txns[j].ID
	})
}

func (m *Memory) GetTransaction(_ context.Context, id int) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("getting transaction: %w", ErrNotFound)
	}
	return &t, nil
}

func (m *Memory) GetTransactionsByDateRange(_ context.Context, start, end time.Time) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txns := make([]models.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			txns = append(txns, t)
		}
	}
	sortTransactions(txns)
	return txns, nil
}

func (m *Memory) CreateTransaction(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *txn
	t.ID = m.nextTransactionID
	m.nextTransactionID++
	t.CreatedAt = time.Now()
	m.transactions[t.ID] = t
	return &t, nil
}

func (m *Memory) UpdateTransaction(_ context.Context, id int, updates models.TransactionUpdate) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("getting transaction: %w", ErrNotFound)
	}
	applyTransactionUpdate(&t, updates)
	m.transactions[id] = t
	return &t, nil
}

func (m *Memory) DeleteTransaction(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return nil
}

// Inventory

func (m *Memory) GetAllInventory(_ context.Context) ([]models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.InventoryItem, 0, len(m.inventory))
	for _, i := range m.inventory {
		items = append(items, i)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *Memory) GetInventoryItem(_ context.Context, id int) (*models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.inventory[id]
	if !ok {
		return nil, fmt.Errorf("getting inventory item: %w", ErrNotFound)
	}
	return &i, nil
}

func (m *Memory) CreateInventoryItem(_ context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	i := *item
	i.ID = m.nextInventoryID
	m.nextInventoryID++
	i.CreatedAt = now
	i.UpdatedAt = now
	m.inventory[i.ID] = i
	return &i, nil
}

func (m *Memory) UpdateInventoryItem(_ context.Context, id int, updates models.InventoryItemUpdate) (*models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.inventory[id]
	if !ok {
		return nil, fmt.Errorf("getting inventory item: %w", ErrNotFound)
	}
	applyInventoryItemUpdate(&i, updates)
	i.UpdatedAt = time.Now()
	m.inventory[id] = i
	return &i, nil
}

func (m *Memory) DeleteInventoryItem(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inventory, id)
	return nil
}

// Health records

func (m *Memory) GetAllHealthRecords(_ context.Context) ([]models.HealthRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]models.HealthRecord, 0, len(m.healthRecords))
	for _, r := range m.healthRecords {
		records = append(records, r)
	}
	sortHealthRecords(records)
	return records, nil
}

func sortHealthRecords(records []models.HealthRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ID > records[j].ID
	})
}

func (m *Memory) GetHealthRecordsByLivestock(_ context.Context, livestockID int) ([]models.HealthRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]models.HealthRecord, 0, len(m.healthRecords))
	for _, r := range m.healthRecords {
		if r.LivestockID == livestockID {
			records = append(records, r)
		}
	}
	sortHealthRecords(records)
	return records, nil
}

func (m *Memory) CreateHealthRecord(_ context.Context, record *models.HealthRecord) (*models.HealthRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := *record
	r.ID = m.nextHealthRecordID
	m.nextHealthRecordID++
	r.CreatedAt = time.Now()
	m.healthRecords[r.ID] = r
	return &r, nil
}

// Sessions

func (m *Memory) CreateSession(_ context.Context, sess *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.JTI] = *sess
	return nil
}

func (m *Memory) GetSession(_ context.Context, jti string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[jti]
	if !ok {
		return nil, fmt.Errorf("getting session: %w", ErrNotFound)
	}
	return &s, nil
}

func (m *Memory) TouchSession(_ context.Context, jti string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[jti]; ok {
		s.ExpiresAt = expiresAt
		m.sessions[jti] = s
	}
	return nil
}

func (m *Memory) RevokeSession(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[jti]
	if !ok {
		return fmt.Errorf("revoking session: %w", ErrNotFound)
	}
	now := time.Now()
	s.RevokedAt = &now
	m.sessions[jti] = s
	return nil
}

// Audit log

func (m *Memory) AppendAuditLog(_ context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := *entry
	e.ID = m.nextAuditLogID
	m.nextAuditLogID++
	e.CreatedAt = time.Now()
	m.auditLogs = append(m.auditLogs, e)
	return nil
}

func (m *Memory) ListAuditLogs(_ context.Context, limit int) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := make([]models.AuditLog, 0)
	for i := len(m.auditLogs) - 1; i >= 0 && len(logs) < limit; i-- {
		logs = append(logs, m.auditLogs[i])
	}
	return logs, nil
}

var _ Store = (*Memory)(nil)
