package echoapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/darasahq/darasa/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind parses the "ordering" query parameter. Fields the given predicate does
// not allow fail the request; ordering fields end up interpolated into SQL and
// must never pass through unvetted.
func (ord *Ordering) Bind(ctx echo.Context, orderable func(string) bool) error {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return nil
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return nil
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if !orderable(field) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown ordering field %q", field))
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
	return nil
}

type SuccessResponse struct {
	Success string `json:"success"`
}
