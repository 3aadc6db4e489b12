package shopapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/greenbasket/greenbasket/config"
	"github.com/greenbasket/greenbasket/internal/checkout"
	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

// each server registers prometheus collectors under its subsystem name, which
// must be unique within the test binary
var metricsSeq int64

type env struct {
	t       *testing.T
	srv     *webserver.Server
	db      *gorm.DB
	cookies map[string]*http.Cookie
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))

	cfg := config.DefaultAppConfig
	cfg.System.Debug = false
	cfg.System.Name = fmt.Sprintf("greenbasket_test_%d", atomic.AddInt64(&metricsSeq, 1))

	srv := webserver.NewServer(&cfg, db)
	co := checkout.NewService(db, decimal.NewFromInt(20))
	rpt := reporting.NewService(db, 10)
	Register(srv, co, rpt)

	return &env{t: t, srv: srv, db: db, cookies: map[string]*http.Cookie{}}
}

// do performs a request carrying the accumulated session cookies.
func (v *env) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	v.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(v.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echoHeaderContentType, "application/json")
	}
	for _, ck := range v.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	v.srv.Echo().ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		v.cookies[ck.Name] = ck
	}

	var resp envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

const echoHeaderContentType = "Content-Type"

func (v *env) seedProduct(name, category, price string, stock int) *domain.Product {
	v.t.Helper()
	row := &domain.Product{
		Name:          name,
		Category:      category,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(v.t, v.db.Create(row).Error)
	return row
}

// signUp registers and logs in a customer account.
func (v *env) signUp(username string) {
	v.t.Helper()

	rec, _ := v.do(http.MethodPost, "/register", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret99",
		"confirm_password": "secret99",
	})
	require.Equal(v.t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = v.do(http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": "secret99",
	})
	require.Equal(v.t, http.StatusOK, rec.Code, rec.Body.String())
}
