package view

import (
	"encoding/json"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName     = "flash-session"
	flashKeySuccess      = "success"
	flashKeyError        = "error"
	flashKeyNotification = "notification"
)

// FlashData holds the messages queued for the next rendered page.
type FlashData struct {
	Success       []string
	Error         []string
	Notifications []Notification
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0 && len(f.Notifications) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key string, value interface{}) {
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return
	}
	sess.AddFlash(value, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetNotification queues a toast for the next rendered page.
func SetNotification(c echo.Context, n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	setFlash(c, flashKeyNotification, string(data))
}

// SetFlashValue stores a one-shot value under key.
func SetFlashValue(c echo.Context, key, value string) {
	setFlash(c, key, value)
}

// TakeFlashValue returns and clears the one-shot value stored under key.
func TakeFlashValue(c echo.Context, key string) (string, bool) {
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return "", false
	}
	flashes := sess.Flashes(key)
	if len(flashes) == 0 {
		return "", false
	}
	_ = sess.Save(c.Request(), c.Response())
	v, ok := flashes[len(flashes)-1].(string)
	return v, ok
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return data
	}

	// The Flashes() method retrieves and then clears the flashes from the session.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)
	notificationFlashes := sess.Flashes(flashKeyNotification)

	data.Success = toStrings(successFlashes)
	data.Error = toStrings(errorFlashes)
	for _, raw := range toStrings(notificationFlashes) {
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err == nil {
			data.Notifications = append(data.Notifications, n)
		}
	}

	// If we had flashes, save the session to persist the clearing of flashes.
	if len(successFlashes) > 0 || len(errorFlashes) > 0 || len(notificationFlashes) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
