// Package fop holds the filter, order and page primitives shared by the
// repositories and their HTTP bridges.
package fop

import (
	"math"
	"strconv"

	"github.com/jrazmi/zentask/sdk/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a 1-based offset page.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// ParsePage reads page and limit query values. Empty values take the
// defaults, non-positive values are rejected and limit is capped at MaxLimit.
// A page whose offset would not fit in an int is rejected. Failures are
// validation.FieldErrors keyed by "page" and "limit".
func ParsePage(page string, limit string) (Page, error) {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}
	var fe validation.FieldErrors

	if limit != "" {
		switch n, err := strconv.Atoi(limit); {
		case err != nil:
			fe.Add("limit", "must be a whole number")
		case n < 1:
			fe.Add("limit", "must be at least 1")
		default:
			p.Limit = min(n, MaxLimit)
		}
	}

	if page != "" {
		switch n, err := strconv.Atoi(page); {
		case err != nil:
			fe.Add("page", "must be a whole number")
		case n < 1:
			fe.Add("page", "must be at least 1")
		case n-1 > math.MaxInt/p.Limit:
			fe.Add("page", "is too large")
		default:
			p.Number = n
		}
	}

	if err := fe.Err(); err != nil {
		return Page{}, err
	}
	return p, nil
}

// PageResult is one page of rows plus the unpaged total.
type PageResult[T any] struct {
	Items []T
	Total int
	Page  Page
}

// TotalPages is ceil(Total / Limit).
func (r PageResult[T]) TotalPages() int {
	if r.Page.Limit <= 0 {
		return 0
	}
	return (r.Total + r.Page.Limit - 1) / r.Page.Limit
}
