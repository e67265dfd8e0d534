package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
)

// StartHTTPServer поднимает HTTP-сервер и останавливает его по отмене контекста
func StartHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 1. Запустить в горутине
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.HTTPAddress),
			zap.Bool("tls", cfg.HTTPSCertFile != ""))

		var err error
		if cfg.HTTPSCertFile != "" && cfg.HTTPSKeyFile != "" {
			err = srv.ListenAndServeTLS(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	// 2. Ждём сигнала на остановку либо падения сервера
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("ctx cancelled, stopping http server…")

	// 3. Graceful stop с таймаутом из конфигурации
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		// активные запросы не завершились вовремя: рвём соединения
		_ = srv.Close()
		logger.Warn("graceful shutdown timed out", zap.Error(err))
	}
	logger.Info("http server stopped")
	return nil
}
