package app

import (
	"context"
	"fmt"

	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/vk/flowgridgo/internal/dataset"
	"github.com/vk/flowgridgo/internal/graph"
	"github.com/vk/flowgridgo/internal/hcl"
	"github.com/vk/flowgridgo/internal/model"
)

// Run executes the configured pipeline end to end: load and compile, feed
// the dataset, fit and/or predict, and print the requested outputs as YAML.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	build, err := hcl.NewLoader(a.reg).Load(ctx, cfg.PipelinePath)
	if err != nil {
		return err
	}
	a.logger.Info("Pipeline compiled.",
		"pipeline", build.Graph.Name(),
		"nodes", len(build.Graph.Nodes()),
		"orderLen", len(build.Model.Order()),
	)

	values, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return err
	}
	feed, err := build.Model.FeedNamed(values)
	if err != nil {
		return fmt.Errorf("binding dataset to model: %w", err)
	}

	var requested []*graph.Data
	for _, name := range cfg.Outputs {
		d, err := build.Model.Resolve(name)
		if err != nil {
			return fmt.Errorf("requested output: %w", err)
		}
		requested = append(requested, d)
	}

	if cfg.Mode == "fit" || cfg.Mode == "fit-predict" {
		if err := build.Model.Fit(ctx, feed); err != nil {
			return err
		}
		a.logger.Info("Fit completed.", "pipeline", build.Graph.Name())
	}

	if cfg.Mode == "predict" || cfg.Mode == "fit-predict" {
		results, err := build.Model.Predict(ctx, feed, requested...)
		if err != nil {
			return err
		}
		a.logger.Info("Predict completed.", "outputs", len(results))
		if err := dataset.Write(a.outW, model.NamedResults(results)); err != nil {
			return err
		}
	}

	return nil
}
