package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partial-update carriers. Handlers decode request payloads into these and
// the store applies only the fields that were set.

type LivestockUpdate struct {
	TagID         Optional[string]          `json:"tagId"`
	Breed         Optional[string]          `json:"breed"`
	Gender        Optional[Gender]          `json:"gender"`
	BirthDate     Optional[time.Time]       `json:"birthDate"`
	Weight        Optional[decimal.Decimal] `json:"weight"`
	HealthStatus  Optional[HealthStatus]    `json:"healthStatus"`
	Location      Optional[string]          `json:"location"`
	PurchasePrice Optional[decimal.Decimal] `json:"purchasePrice"`
	PurchaseDate  Optional[time.Time]       `json:"purchaseDate"`
	Notes         Optional[string]          `json:"notes"`
}

type TransactionUpdate struct {
	Type        Optional[TransactionType] `json:"type"`
	Category    Optional[string]          `json:"category"`
	Description Optional[string]          `json:"description"`
	Amount      Optional[decimal.Decimal] `json:"amount"`
	Date        Optional[time.Time]       `json:"date"`
	PartnerID   Optional[string]          `json:"partnerId"`
	LivestockID Optional[int]             `json:"livestockId"`
	ReceiptURL  Optional[string]          `json:"receiptUrl"`
	Notes       Optional[string]          `json:"notes"`
}

type InventoryItemUpdate struct {
	Name          Optional[string]          `json:"name"`
	Category      Optional[string]          `json:"category"`
	Quantity      Optional[decimal.Decimal] `json:"quantity"`
	Unit          Optional[string]          `json:"unit"`
	MinStockLevel Optional[decimal.Decimal] `json:"minStockLevel"`
	CostPerUnit   Optional[decimal.Decimal] `json:"costPerUnit"`
	Supplier      Optional[string]          `json:"supplier"`
	LastRestocked Optional[time.Time]       `json:"lastRestocked"`
	ExpiryDate    Optional[time.Time]       `json:"expiryDate"`
	Location      Optional[string]          `json:"location"`
	Notes         Optional[string]          `json:"notes"`
}
