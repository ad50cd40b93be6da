package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps an explicit page size. Without a limit parameter every row
// is returned.
const MaxLimit = 500

// Params holds pagination parameters extracted from a request. A zero
// Limit means "no limit".
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 || limit == 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Paged reports whether the request asked for a page rather than every row.
func (p Params) Paged() bool {
	return p.Limit > 0
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Paged() && p.Offset+p.Limit < total
}

// HasPrevious returns true if there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Paged() && p.Offset > 0
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}

// PreviousOffset returns the offset for the previous page.
// Returns 0 if the result would be negative.
func (p Params) PreviousOffset() int {
	prev := p.Offset - p.Limit
	if prev < 0 {
		return 0
	}
	return prev
}

// NextURL and PreviousURL build page links for basePath.
func (p Params) NextURL(basePath string) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", basePath, p.Limit, p.NextOffset())
}

func (p Params) PreviousURL(basePath string) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", basePath, p.Limit, p.PreviousOffset())
}
