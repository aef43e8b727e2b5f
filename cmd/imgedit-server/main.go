package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/imgedit"
	"github.com/pressly/imgedit/server"
)

var (
	flags    = flag.NewFlagSet("imgedit", flag.ExitOnError)
	confFile = flags.String("config", "", "path to config file")
)

func main() {
	flags.Parse(os.Args[1:])

	conf, err := server.NewConfigFromFile(*confFile, os.Getenv("CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(conf)
	if err := srv.Configure(); err != nil {
		log.Fatal(err)
	}

	server.Log.Infof("** Imgedit Server v%s at %s **", imgedit.VERSION, srv.Config.Bind)

	hs := &http.Server{
		Addr:    srv.Config.Bind,
		Handler: srv.NewRouter(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if srv.Config.SSL.Cert != "" && srv.Config.SSL.Key != "" {
			errc <- hs.ListenAndServeTLS(srv.Config.SSL.Cert, srv.Config.SSL.Key)
		} else {
			errc <- hs.ListenAndServe()
		}
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatal(err)
		}
	case <-ctx.Done():
		srv.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			server.Log.WithError(err).Error("graceful shutdown timed out")
		}
	}

	srv.Shutdown()
}
