package cart

import (
	"encoding/gob"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/webserver"
)

const sessionKey = "cart"

// the session codec serializes values with gob
func init() {
	gob.Register(map[string]string{})
}

// Load reads the cart out of the request session. A missing or malformed
// session value yields an empty cart.
func Load(c echo.Context) *Cart {
	sess, err := session.Get(webserver.SessionName, c)
	if err != nil {
		return New()
	}
	raw, ok := sess.Values[sessionKey].(map[string]string)
	if !ok {
		return New()
	}
	return Decode(raw)
}

// Store writes the cart back into the session.
func Store(c echo.Context, crt *Cart) error {
	sess, err := session.Get(webserver.SessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessionKey] = crt.Encode()
	return sess.Save(c.Request(), c.Response())
}

// Clear resets the session cart to empty.
func Clear(c echo.Context) error {
	return Store(c, New())
}
