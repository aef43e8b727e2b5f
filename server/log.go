package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// Log is the server logger, configured by Config.Apply.
var Log = logrus.New()

func init() {
	Log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	Log.Level = logrus.InfoLevel
}

// RequestLogger logs the start and the completion of every request.
func RequestLogger(next http.Handler) http.Handler {
	reqCounter := gometrics.GetOrRegisterCounter("route.TotalNumRequests", nil)

	fn := func(w http.ResponseWriter, r *http.Request) {
		reqCounter.Inc(1)

		u, err := url.QueryUnescape(r.URL.RequestURI())
		if err != nil {
			u = r.URL.RequestURI()
		}
		lg := Log.WithFields(logrus.Fields{
			"req_id": middleware.GetReqID(r.Context()),
			"method": r.Method,
			"uri":    u,
		})

		start := time.Now()
		lg.Debug("Started")

		lw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(lw, r)

		status := lw.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := lg.WithFields(logrus.Fields{
			"resp_status":       status,
			"resp_bytes_length": lw.BytesWritten(),
			"resp_elapsed_ms":   float64(time.Since(start).Nanoseconds()) / 1000000.0,
		})
		if status >= 500 {
			entry.Error("Completed")
		} else {
			entry.Info("Completed")
		}
	}
	return http.HandlerFunc(fn)
}
