package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	gometrics "github.com/rcrowley/go-metrics"
)

// trackRoute times every request to the route and counts its errors.
func trackRoute(metricID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		route := fmt.Sprintf("route.%s", metricID)
		routeTimer := gometrics.GetOrRegisterTimer(route, nil)
		errCounter := gometrics.GetOrRegisterCounter(fmt.Sprintf("%s-err", route), nil)

		handler := func(w http.ResponseWriter, r *http.Request) {
			reqStart := time.Now()

			lw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(lw, r)

			routeTimer.UpdateSince(reqStart)
			if lw.Status() >= 400 {
				errCounter.Inc(1)
			}
		}
		return http.HandlerFunc(handler)
	}
}

// RouteMetrics returns the route timers and counters as a json friendly map.
func RouteMetrics() map[string]interface{} {
	out := map[string]interface{}{}
	gometrics.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case gometrics.Counter:
			out[name] = m.Count()
		case gometrics.Timer:
			t := m.Snapshot()
			out[name] = map[string]interface{}{
				"count":   t.Count(),
				"mean_ms": t.Mean() / float64(time.Millisecond),
				"p95_ms":  t.Percentile(0.95) / float64(time.Millisecond),
			}
		}
	})
	return out
}
