// Package pagination reads page/limit query parameters for list endpoints.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 20

	// MaxLimit caps a single page; fleet and rental listings can grow
	// unbounded and the dashboard never needs more than this per request.
	MaxLimit = 100
)

type Params struct {
	Page  int
	Limit int
}

// Offset is the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse reads ?page and ?limit, substituting defaults for missing,
// malformed or out-of-range values.
func Parse(c *gin.Context) Params {
	p := Params{Page: defaultPage, Limit: defaultLimit}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 1 {
		p.Limit = v
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
