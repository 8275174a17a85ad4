package usecase

import "time"

const (
	// defaultDueDateOffset is applied when a message is bill-like but no due
	// date could be extracted.
	defaultDueDateOffset = 30 * 24 * time.Hour

	// Pagination bounds shared by list operations.
	defaultPageSize = 20
	maxPageSize     = 100

	// statsCachePrefix keys cached bill stats per account.
	statsCachePrefix = "billstats:"
)
