package tasksrepobridge

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/core/scaffolding/fop"
	"github.com/jrazmi/zentask/sdk/validation"
)

// PARAMS
type QueryParams struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string

	ProjectID string
	Status    string
	Priority  string
	DueDate   string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		ProjectID: q.Get("projectId"),
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		DueDate:   q.Get("dueDate"),
	}
}

// listQuery is everything List needs, parsed and checked together so all
// problems are reported at once.
type listQuery struct {
	filter  tasksrepo.QueryFilter
	orderBy fop.By
	page    fop.Page
}

func parseListQuery(userID string, qp QueryParams) (listQuery, error) {
	var fe validation.FieldErrors
	lq := listQuery{filter: tasksrepo.QueryFilter{UserID: userID}}

	if qp.ProjectID != "" {
		if _, err := uuid.Parse(qp.ProjectID); err != nil {
			fe.Add("projectId", "must be a valid id")
		} else {
			lq.filter.ProjectID = &qp.ProjectID
		}
	}
	if qp.Status != "" {
		if s, err := tasksrepo.ParseStatus(qp.Status); err != nil {
			fe.Add("status", "must be one of pending, completed")
		} else {
			lq.filter.Status = &s
		}
	}
	if qp.Priority != "" {
		if p, err := tasksrepo.ParsePriority(qp.Priority); err != nil {
			fe.Add("priority", "must be one of low, medium, high")
		} else {
			lq.filter.Priority = &p
		}
	}
	// The due date filter matches the exact instant given, so only a
	// date or a UTC midnight time selects anything.
	if qp.DueDate != "" {
		if d, err := validation.ParseInstant(qp.DueDate); err != nil {
			fe.Add("dueDate", "must be a valid ISO 8601 date string")
		} else {
			lq.filter.DueDate = &d
		}
	}

	page, err := fop.ParsePage(qp.Page, qp.Limit)
	var pageErrs validation.FieldErrors
	switch {
	case errors.As(err, &pageErrs):
		fe = append(fe, pageErrs...)
	case err != nil:
		fe.Add("page", err.Error())
	}
	lq.page = page

	orderBy, err := parseOrderBy(qp.SortBy, qp.SortOrder)
	if err != nil {
		fe.Add("sortBy", err.Error())
	}
	lq.orderBy = orderBy

	return lq, fe.Err()
}

// ORDER
func parseOrderBy(sortBy, sortOrder string) (fop.By, error) {
	return fop.ParseOrder(tasksrepo.OrderByFields, sortBy, sortOrder, tasksrepo.DefaultOrderBy)
}
