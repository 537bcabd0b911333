package main

import (
	"fmt"
	"io"
	"os"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/client"
	"github.com/inglify/inglify/history"
	"github.com/inglify/inglify/internal/config"
	"github.com/inglify/inglify/internal/wire"
	"go.uber.org/zap"
)

// app carries the streams, flags and lazily built components shared by
// every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configName string
	configDir  string
	verbose    bool

	cfg        *config.Config
	logger     *zap.Logger
	components *wire.Components
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func setupLogger(env string) *zap.Logger {
	var logger *zap.Logger
	if env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	return logger
}

// load reads the configuration once.
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}

	name := a.configName
	if name == "" {
		name = os.Getenv("CONFIG_NAME")
	}
	if name == "" {
		name = "default"
	}

	cfg, err := config.Load(name, a.configDir)
	if err != nil {
		return fmt.Errorf("failed load config: %w", err)
	}
	a.cfg = cfg

	if a.verbose {
		a.setLogger(setupLogger(cfg.Env))
	} else {
		a.setLogger(zap.NewNop())
	}
	return nil
}

func (a *app) setLogger(logger *zap.Logger) {
	a.logger = logger
	if a.components == nil {
		a.components = wire.New(logger)
	}
	a.components.Logger = logger
}

func (a *app) close() {
	if a.components != nil {
		_ = a.components.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) gateway() (*inglify.Gateway, error) {
	return a.components.Gateway(a.cfg)
}

// translator returns a remote client when gateway.url is set and the
// in-process gateway otherwise.
func (a *app) translator() (inglify.Translator, error) {
	if url := a.cfg.Gateway.URL; url != "" {
		return client.New(url), nil
	}
	return a.gateway()
}

func (a *app) history() (*history.Store, error) {
	return a.components.History(a.cfg)
}
