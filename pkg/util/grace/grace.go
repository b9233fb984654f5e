package grace

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// NewGracefulContext returns context that is cancelled by the first SIGINT,
// SIGTERM or SIGHUP. Later signals are handled by the default Go handlers,
// so the second interrupt terminates the process.
func NewGracefulContext(l *zap.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		sig := <-ch
		signal.Stop(ch)
		l.Info("received signal, finishing regions in progress",
			zap.String("signal", sig.String()))
		cancel()
	}()

	return ctx
}
