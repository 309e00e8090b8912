package models

// AllModels lists every model owned by this service, in dependency order.
// Migrations are the source of truth in production; tests use this list with
// AutoMigrate.
func AllModels() []any {
	return []any{
		&ProductStockModel{},
		&LocationStockModel{},
		&StockMovementModel{},
		&CustomerLoyaltyModel{},
		&PointsTransactionModel{},
		&SaleModel{},
		&SaleItemModel{},
		&RefundPolicyModel{},
		&RefundModel{},
		&RefundItemModel{},
		&RefundAuditEntryModel{},
	}
}
