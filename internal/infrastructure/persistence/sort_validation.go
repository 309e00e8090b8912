package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, defaultField otherwise.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// RefundSortFields contains allowed sort fields for refunds
var RefundSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"request_date":   true,
	"approval_date":  true,
	"completed_date": true,
	"refund_number":  true,
	"refund_amount":  true,
	"state":          true,
}
