package tasksrepo

import "github.com/jrazmi/zentask/core/scaffolding/fop"

// OrderByFields maps the sortable external names to store columns.
var OrderByFields = map[string]string{
	"createdAt": "t.created_at",
	"dueDate":   "t.due_date",
	"priority":  "t.priority",
	"sortOrder": "t.sort_order",
}

// PKField breaks ties when ordering.
const PKField = "t.task_id"

var DefaultOrderBy = fop.NewBy("t.sort_order", fop.ASC)
