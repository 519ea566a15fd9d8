package httpv1

import (
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogParser/internal/controller/common/logging"
	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/repo/repoerrs"
	"github.com/Egor213/LogParser/internal/service"
	"github.com/labstack/echo/v4"
)

const source = "http"

type errorResponse struct {
	Error string `json:"error"`
}

type LogController struct {
	querier service.Querier
}

func NewLogController(q service.Querier) *LogController {
	return &LogController{querier: q}
}

// GetLogs serves GET /logs. The time range is applied only when start_date,
// end_date, start_time and end_time are all given.
func (c *LogController) GetLogs(ctx echo.Context) error {
	req := NewQueryRequest(ctx)
	logginghelper.LogQueryReceived(source, req)

	result, err := c.querier.Query(ctx.Request().Context(), req)
	if err != nil {
		logginghelper.LogQueryError(source, req, err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: publicMessage(err)})
	}

	rows := result.Rows
	if rows == nil {
		rows = []domain.Row{}
	}

	logginghelper.LogQueryServed(source, req, len(rows))
	return ctx.JSON(http.StatusOK, rows)
}

// publicMessage returns the client facing text of err.
func publicMessage(err error) string {
	var (
		fieldErr *service.InvalidFieldError
		queryErr *service.QueryError
		faultErr *repoerrs.StorageFaultError
	)
	switch {
	case errors.As(err, &fieldErr):
		return fieldErr.Error()
	case errors.As(err, &queryErr):
		return queryErr.Error()
	case errors.As(err, &faultErr):
		return faultErr.Message()
	}
	return "internal error"
}

func NewQueryRequest(ctx echo.Context) service.QueryRequest {
	params := ctx.QueryParams()

	fields := domain.Wildcard
	if params.Has("query") {
		fields = params.Get("query")
	}

	return service.QueryRequest{
		Fields: fields,
		Range: service.RangeFromParts(
			params.Get("start_date"),
			params.Get("start_time"),
			params.Get("end_date"),
			params.Get("end_time"),
		),
	}
}
