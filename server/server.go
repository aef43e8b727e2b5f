package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	respond = NewResponder()
)

type Server struct {
	Config *Config
	Store  Store
}

func New(conf *Config) *Server {
	return &Server{Config: conf}
}

func (srv *Server) Configure() (err error) {
	if err := srv.Config.Apply(); err != nil {
		return err
	}

	if err := srv.Config.SetupStatsD(); err != nil {
		return err
	}

	srv.Store, err = srv.Config.GetStore()
	if err != nil {
		return err
	}

	return nil
}

// Close signals to the server that should deny new requests
// and finish up requests in progress.
func (srv *Server) Close() {
	Log.Info("closing server..")
}

// Shutdown will release other resources and halt the server.
func (srv *Server) Shutdown() {
	if srv.Store != nil {
		if err := srv.Store.Close(); err != nil {
			Log.WithError(err).Error("closing session store")
		}
	}
	Log.Info("server shutdown.")
}

func (srv *Server) NewRouter() http.Handler {
	cf := srv.Config

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	if cf.Sentry.DSN != "" {
		r.Use(CapturePanic())
	} else {
		r.Use(middleware.Recoverer)
	}

	r.Use(middleware.ThrottleBacklog(cf.Limits.MaxRequests, cf.Limits.BacklogSize, cf.Limits.BacklogTimeout))
	r.Use(middleware.Timeout(cf.Limits.RequestTimeout))

	r.Use(middleware.Heartbeat("/ping"))

	if cf.Profiler {
		r.Mount("/debug", middleware.Profiler())
		r.Get("/metrics", GetMetrics)
	}

	r.Get("/", Index)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cf.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))

		r.With(trackRoute("handles")).Get("/handles", srv.GetHandles)

		r.Route("/sessions", func(r chi.Router) {
			r.With(trackRoute("sessionCreate")).Post("/", srv.CreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", srv.GetSession)
				r.Delete("/", srv.DeleteSession)

				r.With(trackRoute("resizeStart")).Post("/resize/start", srv.StartResize)
				r.With(trackRoute("resizeDrag")).Post("/resize/drag", srv.DragResize)
				r.With(trackRoute("resizeEnd")).Post("/resize/end", srv.EndResize)
				r.With(trackRoute("resizeCancel")).Post("/resize/cancel", srv.CancelResize)
				r.With(trackRoute("layout")).Post("/layout", srv.ReportLayout)
				r.With(trackRoute("rotate")).Post("/rotate", srv.RotateSession)
			})
		})
	})

	return r
}
