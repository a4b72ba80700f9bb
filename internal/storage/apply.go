package storage

import "ranchbook/internal/models"

// Update application is shared by both Store implementations so the
// three-state optional semantics cannot drift between them.

func applyLivestockUpdate(animal *models.Livestock, u models.LivestockUpdate) {
	u.TagID.Apply(&animal.TagID)
	u.Breed.Apply(&animal.Breed)
	u.Gender.Apply(&animal.Gender)
	u.BirthDate.ApplyPtr(&animal.BirthDate)
	u.Weight.ApplyPtr(&animal.Weight)
	u.HealthStatus.Apply(&animal.HealthStatus)
	u.Location.ApplyPtr(&animal.Location)
	u.PurchasePrice.ApplyPtr(&animal.PurchasePrice)
	u.PurchaseDate.ApplyPtr(&animal.PurchaseDate)
	u.Notes.ApplyPtr(&animal.Notes)
}

func applyTransactionUpdate(txn *models.Transaction, u models.TransactionUpdate) {
	u.Type.Apply(&txn.Type)
	u.Category.Apply(&txn.Category)
	u.Description.Apply(&txn.Description)
	u.Amount.Apply(&txn.Amount)
	u.Date.Apply(&txn.Date)
	u.PartnerID.ApplyPtr(&txn.PartnerID)
	u.LivestockID.ApplyPtr(&txn.LivestockID)
	u.ReceiptURL.ApplyPtr(&txn.ReceiptURL)
	u.Notes.ApplyPtr(&txn.Notes)
}

func applyInventoryItemUpdate(item *models.InventoryItem, u models.InventoryItemUpdate) {
	u.Name.Apply(&item.Name)
	u.Category.Apply(&item.Category)
	u.Quantity.Apply(&item.Quantity)
	u.Unit.Apply(&item.Unit)
	u.MinStockLevel.ApplyPtr(&item.MinStockLevel)
	u.CostPerUnit.ApplyPtr(&item.CostPerUnit)
	u.Supplier.ApplyPtr(&item.Supplier)
	u.LastRestocked.ApplyPtr(&item.LastRestocked)
	u.ExpiryDate.ApplyPtr(&item.ExpiryDate)
	u.Location.ApplyPtr(&item.Location)
	u.Notes.ApplyPtr(&item.Notes)
}
