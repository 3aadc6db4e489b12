package webserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/domain"
)

// Session value keys.
const (
	sessUserID = "user_id"
	sessLevel  = "level"
)

// Landing pages used for authorization redirects. Unauthenticated users land
// on login; authenticated users with the wrong role land on their own
// dashboard instead of seeing an error page.
const (
	LoginPath             = "/login"
	CustomerDashboardPath = "/api/shop/dashboard"
	AdminDashboardPath    = "/api/admin/dashboard"
)

// SignIn records the authenticated user in the session.
func SignIn(c echo.Context, user *domain.SysUser) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessUserID] = user.ID
	sess.Values[sessLevel] = user.Level
	return sess.Save(c.Request(), c.Response())
}

// SignOut drops the authenticated identity and everything else the session
// holds, including the cart.
func SignOut(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values = make(map[interface{}]interface{})
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c echo.Context) (int64, bool) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[sessUserID].(int64)
	return id, ok && id != 0
}

// CurrentLevel returns the authenticated user's level, empty when anonymous.
func CurrentLevel(c echo.Context) string {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return ""
	}
	level, _ := sess.Values[sessLevel].(string)
	return level
}

// CurrentUser loads the authenticated user record.
func CurrentUser(c echo.Context, db *gorm.DB) (*domain.SysUser, error) {
	id, ok := CurrentUserID(c)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var user domain.SysUser
	if err := db.WithContext(c.Request().Context()).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogin stamps the user's last login time.
func TouchLastLogin(db *gorm.DB, userID int64) error {
	return db.Model(&domain.SysUser{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

// RequireCustomer gates the customer surface. Anonymous requests redirect to
// login; staff accounts redirect to the admin dashboard.
func RequireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUserID(c); !ok {
			return c.Redirect(http.StatusFound, LoginPath)
		}
		if CurrentLevel(c) == domain.LevelAdmin {
			return c.Redirect(http.StatusFound, AdminDashboardPath)
		}
		return next(c)
	}
}

// RequireAdmin gates the staff surface. Anonymous requests redirect to
// login; customer accounts redirect to their dashboard.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUserID(c); !ok {
			return c.Redirect(http.StatusFound, LoginPath)
		}
		if CurrentLevel(c) != domain.LevelAdmin {
			return c.Redirect(http.StatusFound, CustomerDashboardPath)
		}
		return next(c)
	}
}
