package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	raven "github.com/getsentry/raven-go"
	"github.com/sirupsen/logrus"
)

// sentryHook forwards warnings and worse to sentry.
type sentryHook struct{}

func (sentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (sentryHook) Fire(entry *logrus.Entry) error {
	msg := entry.Message
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	packet := raven.NewPacket(
		msg,
		raven.NewException(
			fmt.Errorf("API alert: %s", msg),
			raven.NewStacktrace(2, 3, nil),
		),
	)
	packet.Level = sentryLevel(entry.Level)
	if packet.Extra == nil {
		packet.Extra = map[string]interface{}{}
	}
	for k, v := range entry.Data {
		if k != logrus.ErrorKey {
			packet.Extra[k] = v
		}
	}
	raven.Capture(packet, nil)
	return nil
}

func sentryLevel(level logrus.Level) raven.Severity {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return raven.FATAL
	case logrus.ErrorLevel:
		return raven.ERROR
	default:
		return raven.WARNING
	}
}

// CapturePanic middleware reports panics to sentry.
func CapturePanic() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rval := recover(); rval != nil {
					if rval == http.ErrAbortHandler {
						panic(rval)
					}
					Log.WithField("stack", string(debug.Stack())).Errorf("panic: %v", rval)
					rvalStr := fmt.Sprint(rval)
					packet := raven.NewPacket(rvalStr, raven.NewException(errors.New(rvalStr), raven.NewStacktrace(2, 3, nil)), raven.NewHttp(r))
					raven.Capture(packet, nil)
					respond.ApiError(w, http.StatusInternalServerError, errors.New("internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
