package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fulldump/box"
	"go.uber.org/zap"

	"github.com/fulldump/dbjson/api"
	"github.com/fulldump/dbjson/configuration"
	"github.com/fulldump/dbjson/database"
	"github.com/fulldump/dbjson/service"
)

// Bootstrap wires the database, the api and the http server. start blocks
// until stop is called or a SIGTERM/SIGINT arrives.
func Bootstrap(c *configuration.Configuration, logger *zap.Logger) (start, stop func(), err error) {

	db := database.NewDatabase(&database.Config{
		Filename: c.File,
		Persist:  !c.ReadOnly,
		Logger:   logger.Named("database"),
	})

	b := api.Build(service.NewService(db), c.Statics)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(logger.Named("access")),
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
		api.InterceptorUnavailable(db),
	)

	s := &http.Server{
		Addr:              c.HttpAddr,
		Handler:           api.Handler(box.Box2Http(b), strings.Split(c.AllowedOrigins, ",")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("listening", zap.String("addr", ln.Addr().String()))

	stopOnce := sync.Once{}
	stop = func() {
		stopOnce.Do(func() {
			db.Stop()
			s.Shutdown(context.Background())
		})
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		logger.Info("signal received", zap.String("signal", sig.String()))
		stop()
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				logger.Error("database", zap.Error(err))
				stop()
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server", zap.Error(err))
			}
		}()

		wg.Wait()
	}

	return
}
