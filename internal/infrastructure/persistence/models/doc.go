// Package models contains GORM persistence models. Domain types stay free of ORM
// tags; each model converts to and from its domain type.
//
// Files:
//   - base.go: shared columns (id, timestamps, version, tenant)
//   - refund.go: refunds, refund items, policies, audit entries
//   - trade.go: sales and sale items
//   - inventory.go: product stock counters, location stock, stock movements
//   - partner.go: customer loyalty balances and the points ledger
//   - registry.go: the full model list for test schemas
package models
