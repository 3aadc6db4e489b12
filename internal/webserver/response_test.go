package webserver

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"/?page=2&perPage=20", 2, 20},
		{"/", 1, 9},
		{"/?page=0", 1, 9},
		{"/?page=-3&perPage=0", 1, 9},
		{"/?perPage=500", 1, 9},
		{"/?page=abc&perPage=abc", 1, 9},
	}
	for _, tt := range tests {
		page, perPage := ParsePagination(newContext(tt.query), 9)
		assert.Equal(t, tt.wantPage, page, tt.query)
		assert.Equal(t, tt.wantPerPage, perPage, tt.query)
	}
}

func TestParseIDParam(t *testing.T) {
	c := newContext("/")
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, err := ParseIDParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c.SetParamValues("apples")
	_, err = ParseIDParam(c, "id")
	assert.Error(t, err)
}
