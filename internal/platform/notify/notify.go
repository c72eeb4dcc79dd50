package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/hashicorp/go-hclog"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = busName + ".Notify"
	appName    = "audiomark"
	expireMS   = int32(4000)
)

type Notifier interface {
	Notify(summary, body string) error
}

type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// Desktop sends freedesktop notifications over the session bus. The bus is
// dialed on first use; when it is unreachable every call is a logged no-op.
type Desktop struct {
	logger hclog.Logger

	once sync.Once
	conn *dbus.Conn
	err  error
}

func New(enabled bool, logger hclog.Logger) Notifier {
	if !enabled {
		return Nop{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Desktop{logger: logger.Named("notify")}
}

func (d *Desktop) Notify(summary, body string) error {
	d.once.Do(func() {
		d.conn, d.err = dbus.SessionBus()
		if d.err != nil {
			d.logger.Warn("session bus unavailable", "error", d.err)
		}
	})
	if d.err != nil {
		return nil
	}
	obj := d.conn.Object(busName, dbus.ObjectPath(objectPath))
	call := obj.Call(method, 0, appName, uint32(0), "", summary, body, []string{}, map[string]dbus.Variant{}, expireMS)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}
	return nil
}
