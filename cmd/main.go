package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/warp/internal/adapters/console"
	service "github.com/okian/warp/internal/app"
	"github.com/okian/warp/internal/config"
	"github.com/okian/warp/pkg/logger"
	"github.com/okian/warp/pkg/metrics"
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr directly since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		logger.Get().Error(ctx, "run failed", logger.Error(err))
	}
}

// run wires the calculator from cfg and evaluates one line of in. Errors in
// the velocity itself are printed to out; only I/O failures are returned.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}
	log := logger.Named("warp")

	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(metrics.Default()),
	)
	c := console.New(svc, console.WithNoneMarker(cfg.NoneMarker))

	runErr := c.Run(ctx, in, out)

	if err := metrics.WriteTextfile(cfg.MetricsFile, metrics.GetRegistry()); err != nil {
		log.Warn(ctx, "metrics textfile not written", logger.String("path", cfg.MetricsFile), logger.Error(err))
	}
	return runErr
}
