package fopbridge

import "github.com/jrazmi/zentask/core/scaffolding/fop"

// PageResponse is one page of records plus paging totals.
type PageResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageResponse converts a core page result with marshal applied to
// each item.
func NewPageResponse[C any, T any](res fop.PageResult[C], marshal func(C) T) PageResponse[T] {
	data := make([]T, len(res.Items))
	for i, item := range res.Items {
		data[i] = marshal(item)
	}
	return PageResponse[T]{
		Data:       data,
		Total:      res.Total,
		Page:       res.Page.Number,
		Limit:      res.Page.Limit,
		TotalPages: res.TotalPages(),
	}
}
