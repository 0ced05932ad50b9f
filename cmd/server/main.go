package main

import (
	"fmt"
	"os"
	"time"

	"cdmboard/internal/api"
	"cdmboard/internal/config"
	"cdmboard/internal/engine"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagConfig string
	flagData   string
	flagListen string
)

var rootCmd = &cobra.Command{
	Use:   "cdmboard",
	Short: "Serves the CDM activities-in-transition dashboard API",
	RunE:  runServer,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.Flags().StringVar(&flagData, "data", "", "path to the CDM CSV export (overrides config)")
	rootCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagData != "" {
		cfg.DataPath = flagData
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The API goes live immediately with no data; handlers answer 503
	// until the background load installs the table.
	h := api.NewHandler(nil, cfg.DefaultTopN)
	h.RegisterRoutes(e)

	go func() {
		t0 := time.Now()
		table, err := engine.LoadTable(cfg.DataPath, logger)
		if err != nil {
			logger.Error("dataset load failed",
				zap.String("path", cfg.DataPath),
				zap.Error(err))
			return
		}
		h.SetTable(table)
		logger.Info("dataset ready",
			zap.Int("rows", table.Len()),
			zap.Duration("elapsed", time.Since(t0)))
	}()

	logger.Info("server listening", zap.String("addr", cfg.Listen))
	return e.Start(cfg.Listen)
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
