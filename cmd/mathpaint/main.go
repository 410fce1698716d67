// Package main is the entry point for mathpaint, a windowed GLSL canvas.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mathpaint/internal/app"
	"github.com/Faultbox/mathpaint/internal/config"
	"github.com/Faultbox/mathpaint/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code; deferred cleanup runs before os.Exit.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return app.ExitConfig
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Write config error: %v\n", err)
			return app.ExitConfig
		}
		fmt.Printf("Config written to %s\n", path)
		return app.ExitOK
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return app.ExitConfig
	}
	defer logger.Sync()

	logger.Info("=== Painting With Maths ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, logger.Log)
	if err != nil {
		code := app.ExitCode(err)
		logger.Error("failed to start session", zap.Error(err), zap.Int("exit_code", code))
		return code
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		code := app.ExitCode(err)
		logger.Error("render loop error", zap.Error(err), zap.Int("exit_code", code))
		return code
	}

	logger.Info("session closed normally")
	return app.ExitOK
}
