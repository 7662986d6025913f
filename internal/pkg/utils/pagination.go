package utils

import (
	"fmt"
	"math"
)

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// TotalPages rounds total/limit up.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Showing renders the "from-to of total" label of a page.
func Showing(page, limit int, total int64) string {
	if total == 0 {
		return "0-0 of 0"
	}
	from := Offset(page, limit) + 1
	to := min(page*limit, int(total))
	if from > to {
		return fmt.Sprintf("0-0 of %d", total)
	}
	return fmt.Sprintf("%d-%d of %d", from, to, total)
}
