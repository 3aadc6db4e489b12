package adminapi

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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/greenbasket/greenbasket/config"
	"github.com/greenbasket/greenbasket/internal/checkout"
	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/shopapi"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

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

// newEnv builds the full route table the way main does, so staff login works.
func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))

	cfg := config.DefaultAppConfig
	cfg.System.Debug = false
	cfg.System.Name = fmt.Sprintf("greenbasket_admintest_%d", atomic.AddInt64(&metricsSeq, 1))

	srv := webserver.NewServer(&cfg, db)
	co := checkout.NewService(db, decimal.NewFromInt(20))
	rpt := reporting.NewService(db, 10)
	shopapi.Register(srv, co, rpt)
	Register(srv, rpt)

	return &env{t: t, srv: srv, db: db, cookies: map[string]*http.Cookie{}}
}

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
		req.Header.Set("Content-Type", "application/json")
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

func (v *env) seedUser(username, level string) *domain.SysUser {
	v.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret99"), bcrypt.DefaultCost)
	require.NoError(v.t, err)
	user := &domain.SysUser{Username: username, Password: string(hash), Level: level}
	require.NoError(v.t, v.db.Create(user).Error)
	return user
}

func (v *env) loginAs(username string) {
	v.t.Helper()
	rec, _ := v.do(http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": "secret99",
	})
	require.Equal(v.t, http.StatusOK, rec.Code, rec.Body.String())
}

func (v *env) loginAdmin() {
	v.t.Helper()
	v.seedUser("root", domain.LevelAdmin)
	v.loginAs("root")
}

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

func (v *env) seedOrder(customer *domain.SysUser, status domain.OrderStatus, items map[*domain.Product]int) *domain.Order {
	v.t.Helper()
	order := &domain.Order{
		CustomerID:     &customer.ID,
		Status:         status,
		DeliveryMethod: "deliver",
		PaymentMethod:  "cod",
		DeliveryFee:    decimal.NewFromInt(20),
	}
	require.NoError(v.t, v.db.Create(order).Error)
	for product, qty := range items {
		require.NoError(v.t, v.db.Create(&domain.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  qty,
			Price:     product.Price,
		}).Error)
	}
	return order
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (v *env) auditCount(action string) int64 {
	v.t.Helper()
	var count int64
	require.NoError(v.t, v.db.Model(&domain.SysOprLog{}).
		Where("opt_action = ?", action).
		Count(&count).Error)
	return count
}
