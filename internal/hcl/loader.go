// Package hcl loads pipeline definition files: it parses the HCL into the
// schema structs, instantiates processors through the registry, replays the
// declared steps against a fresh graph and compiles the designated model.
package hcl

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/vk/flowgridgo/internal/graph"
	"github.com/vk/flowgridgo/internal/model"
	"github.com/vk/flowgridgo/internal/processor"
	"github.com/vk/flowgridgo/internal/registry"
	"github.com/vk/flowgridgo/internal/schema"
)

// Build is the result of loading a pipeline file: the constructed graph and
// the compiled model.
type Build struct {
	Graph *graph.Graph
	Model *model.Model
}

// Loader turns pipeline files into compiled models using a processor
// registry.
type Loader struct {
	reg *registry.Registry
}

// NewLoader creates a loader backed by the given registry.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg}
}

// Load reads and builds a pipeline file from disk.
func (l *Loader) Load(ctx context.Context, path string) (*Build, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline file: %w", err)
	}
	return l.LoadBytes(ctx, path, src)
}

// LoadBytes parses and builds a pipeline definition from memory.
func (l *Loader) LoadBytes(ctx context.Context, filename string, src []byte) (*Build, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var cfg schema.PipelineConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, diags
	}
	p := cfg.Pipeline
	if p == nil {
		return nil, fmt.Errorf("%s: no pipeline block found", filename)
	}
	if p.Model == nil {
		return nil, fmt.Errorf("pipeline %q: missing model block", p.Name)
	}
	if len(p.Inputs) == 0 {
		return nil, fmt.Errorf("pipeline %q: declares no inputs", p.Name)
	}
	logger.Debug("Pipeline parsed.", "pipeline", p.Name, "inputs", len(p.Inputs), "steps", len(p.Steps))

	g := graph.New(p.Name)
	handles := make(map[string][]*graph.Data)

	declare := func(name string, outs []*graph.Data) error {
		if _, exists := handles[name]; exists {
			return fmt.Errorf("pipeline %q: duplicate declaration %q", p.Name, name)
		}
		handles[name] = outs
		return nil
	}

	for _, in := range p.Inputs {
		d := g.NewInput(in.Name, processor.Shape(in.Shape))
		if err := declare(in.Name, []*graph.Data{d}); err != nil {
			return nil, err
		}
	}

	for _, step := range p.Steps {
		params, err := stepParams(step)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		proc, err := l.reg.NewProcessor(step.ProcessorType, params)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}

		inputs, err := resolveRefs(handles, step.Inputs)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		targets, err := resolveRefs(handles, step.Targets)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}

		n := g.NewNode(proc, step.Name, step.Frozen)
		outs, err := n.ApplySupervised(inputs, targets)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		if err := declare(step.Name, outs); err != nil {
			return nil, err
		}
		logger.Debug("Step applied.", "step", step.Name, "type", step.ProcessorType, "outputs", len(outs))
	}

	modelInputs, err := resolveRefs(handles, p.Model.Inputs)
	if err != nil {
		return nil, fmt.Errorf("model block: %w", err)
	}
	modelOutputs, err := resolveRefs(handles, p.Model.Outputs)
	if err != nil {
		return nil, fmt.Errorf("model block: %w", err)
	}

	m, err := model.Compile(modelInputs, modelOutputs)
	if err != nil {
		return nil, fmt.Errorf("compiling pipeline %q: %w", p.Name, err)
	}
	logger.Debug("Pipeline compiled.", "pipeline", p.Name, "orderLen", len(m.Order()))

	return &Build{Graph: g, Model: m}, nil
}

// stepParams evaluates the attributes of a step's params block. Values must
// be constant expressions.
func stepParams(step *schema.Step) (map[string]cty.Value, error) {
	if step.Params == nil {
		return nil, nil
	}
	attrs, diags := step.Params.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	params := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		params[name] = v
	}
	return params, nil
}

// resolveRefs maps declaration references to Data handles. A reference is a
// declared name, optionally suffixed with `[i]` to pick one output of a
// multi-output step.
func resolveRefs(handles map[string][]*graph.Data, refs []string) ([]*graph.Data, error) {
	out := make([]*graph.Data, 0, len(refs))
	for _, ref := range refs {
		d, err := resolveRef(handles, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func resolveRef(handles map[string][]*graph.Data, ref string) (*graph.Data, error) {
	name, index := ref, -1
	if open := strings.IndexByte(ref, '['); open != -1 && strings.HasSuffix(ref, "]") {
		idx, err := strconv.Atoi(ref[open+1 : len(ref)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid reference %q", ref)
		}
		name, index = ref[:open], idx
	}

	outs, ok := handles[name]
	if !ok {
		return nil, fmt.Errorf("reference %q does not match any declared input or earlier step", ref)
	}
	if index == -1 {
		if len(outs) != 1 {
			return nil, fmt.Errorf("reference %q is ambiguous: step has %d outputs, use %s[i]", ref, len(outs), name)
		}
		return outs[0], nil
	}
	if index < 0 || index >= len(outs) {
		return nil, fmt.Errorf("reference %q: output index out of range (step has %d outputs)", ref, len(outs))
	}
	return outs[index], nil
}
