package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a ranch partner. The ID is the external identity provider's
// subject id, stable across logins. Users are never physically deleted;
// deactivation flips IsActive.
type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex" json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Role            Role      `gorm:"type:text;not null;default:partner" json:"role"`
	IsActive        bool      `gorm:"not null;default:true" json:"isActive"`
	LastActiveAt    time.Time `json:"lastActiveAt"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Livestock struct {
	ID            int              `gorm:"primaryKey;autoIncrement" json:"id"`
	TagID         string           `gorm:"uniqueIndex;not null" json:"tagId"`
	Breed         string           `gorm:"not null" json:"breed"`
	Gender        Gender           `gorm:"type:text;not null" json:"gender"`
	BirthDate     *time.Time       `json:"birthDate"`
	Weight        *decimal.Decimal `gorm:"type:decimal(8,2)" json:"weight"` // lbs
	HealthStatus  HealthStatus     `gorm:"type:text;not null;default:healthy" json:"healthStatus"`
	Location      *string          `json:"location"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"purchasePrice"`
	PurchaseDate  *time.Time       `json:"purchaseDate"`
	Notes         *string          `json:"notes"`
	IsActive      bool             `gorm:"not null;default:true" json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Transaction.Amount is always a non-negative magnitude; the sign of the
// net effect is carried by Type. PartnerID and LivestockID are weak
// references and may dangle after the target is deleted.
type Transaction struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        TransactionType `gorm:"type:text;not null" json:"type"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	PartnerID   *string         `json:"partnerId"`
	LivestockID *int            `json:"livestockId"`
	ReceiptURL  *string         `json:"receiptUrl"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type InventoryItem struct {
	ID            int              `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Category      string           `gorm:"not null" json:"category"`
	Quantity      decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit          string           `gorm:"not null" json:"unit"`
	MinStockLevel *decimal.Decimal `gorm:"type:decimal(10,2)" json:"minStockLevel"`
	CostPerUnit   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"costPerUnit"`
	Supplier      *string          `json:"supplier"`
	LastRestocked *time.Time       `json:"lastRestocked"`
	ExpiryDate    *time.Time       `json:"expiryDate"`
	Location      *string          `json:"location"`
	Notes         *string          `json:"notes"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// HealthRecord is append-only; there are no update or delete operations.
type HealthRecord struct {
	ID           int              `gorm:"primaryKey;autoIncrement" json:"id"`
	LivestockID  int              `gorm:"not null;index" json:"livestockId"`
	RecordType   string           `gorm:"not null" json:"recordType"`
	Description  string           `gorm:"not null" json:"description"`
	Veterinarian *string          `json:"veterinarian"`
	Cost         *decimal.Decimal `gorm:"type:decimal(8,2)" json:"cost"`
	Date         time.Time        `gorm:"not null" json:"date"`
	NextDueDate  *time.Time       `json:"nextDueDate"`
	Notes        *string          `json:"notes"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Session backs the rolling 24h session: the row's ExpiresAt is the single
// source of truth for expiry and is pushed forward on every authenticated
// request.
type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"index;not null" json:"userId"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `json:"userId,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}
