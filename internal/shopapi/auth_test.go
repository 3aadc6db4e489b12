package shopapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

func TestAnonymousRedirectsToLogin(t *testing.T) {
	v := newEnv(t)

	for _, path := range []string{
		"/api/shop/dashboard",
		"/api/shop/products",
		"/api/shop/cart",
		"/api/shop/checkout",
	} {
		rec, _ := v.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, webserver.LoginPath, rec.Header().Get("Location"), path)
	}
}

func TestAdminRedirectedOffCustomerSurface(t *testing.T) {
	v := newEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, v.db.Create(&domain.SysUser{
		Username: "root",
		Password: string(hash),
		Level:    domain.LevelAdmin,
	}).Error)

	rec, resp := v.do(http.MethodPost, "/login", map[string]string{
		"username": "root",
		"password": "adminpass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, webserver.AdminDashboardPath, data.Redirect)

	rec, _ = v.do(http.MethodGet, "/api/shop/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, webserver.AdminDashboardPath, rec.Header().Get("Location"))
}

func TestRegisterValidation(t *testing.T) {
	v := newEnv(t)

	rec, resp := v.do(http.MethodPost, "/register", map[string]string{
		"username":         "bob",
		"email":            "not-an-email",
		"password":         "secret99",
		"confirm_password": "secret99",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)

	rec, resp = v.do(http.MethodPost, "/register", map[string]string{
		"username":         "bob",
		"email":            "bob@example.com",
		"password":         "secret99",
		"confirm_password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PASSWORD_MISMATCH", resp.Code)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	v := newEnv(t)
	v.signUp("alice")

	rec, resp := v.do(http.MethodPost, "/register", map[string]string{
		"username":         "alice",
		"email":            "other@example.com",
		"password":         "secret99",
		"confirm_password": "secret99",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USERNAME_EXISTS", resp.Code)

	rec, resp = v.do(http.MethodPost, "/register", map[string]string{
		"username":         "alice2",
		"email":            "alice@example.com",
		"password":         "secret99",
		"confirm_password": "secret99",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_EXISTS", resp.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	v := newEnv(t)
	v.signUp("alice")

	rec, resp := v.do(http.MethodPost, "/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Code)
	assert.Equal(t, "Invalid username or password.", resp.Message)
}

func TestLogoutEndsSession(t *testing.T) {
	v := newEnv(t)
	v.signUp("alice")

	rec, _ := v.do(http.MethodGet, "/api/shop/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := v.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You have been logged out successfully.", resp.Message)

	rec, _ = v.do(http.MethodGet, "/api/shop/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestLoginStampsLastLogin(t *testing.T) {
	v := newEnv(t)
	v.signUp("alice")

	var user domain.SysUser
	require.NoError(t, v.db.Where("username = ?", "alice").First(&user).Error)
	assert.False(t, user.LastLogin.IsZero())
	assert.Equal(t, domain.LevelCustomer, user.Level)
}
