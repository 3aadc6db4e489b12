package webserver

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Response is the uniform API envelope.
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

// ListResponse wraps paginated listings.
type ListResponse struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// OK responds 200 with data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Data: data})
}

// OKMessage responds 200 with a user-visible message and optional data.
func OKMessage(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Message: message, Data: data})
}

// Fail responds with an error envelope.
func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, Response{Code: code, Message: message, Detail: detail})
}

// Paged responds 200 with a paginated listing.
func Paged(c echo.Context, items interface{}, total int64, page, perPage int) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Data: ListResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}})
}

// ParsePagination reads page/perPage query parameters with bounds applied.
func ParsePagination(c echo.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.QueryParam("perPage"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// ParseIDParam parses a numeric path parameter.
func ParseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// HandleValidationError maps validator errors onto a 400 envelope.
func HandleValidationError(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", fields)
	}
	return Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", nil)
}
