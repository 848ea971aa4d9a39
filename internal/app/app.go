// Package app wires the engine together: it configures logging, registers
// the processor modules, loads and compiles the pipeline, feeds it the
// dataset and prints the results.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/flowgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	reg    *registry.Registry
}

// New is the constructor for the main application. Results are written to
// outW; logs go to logW. Passing modules overrides the builtin processor
// set, which is primarily useful in tests.
func New(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All processor modules registered.", "count", len(modules), "types", reg.Types())

	return &App{
		outW:   outW,
		logger: logger,
		reg:    reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}
