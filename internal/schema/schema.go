// Package schema defines the HCL structures of a pipeline definition file.
package schema

import "github.com/hashicorp/hcl/v2"

// ParamsBlock holds the raw body of a step's `params` block; attribute
// names and values are interpreted by the processor factory.
type ParamsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Input represents an `input` block: a named entry point with a declared
// shape (dimensions excluding the sample axis; -1 is a wildcard).
type Input struct {
	Name  string `hcl:"name,label"`
	Shape []int  `hcl:"shape"`
}

// Step represents a `step` block: one processor instance applied to
// previously declared inputs or step outputs.
type Step struct {
	ProcessorType string       `hcl:"processor_type,label"`
	Name          string       `hcl:"instance_name,label"`
	Inputs        []string     `hcl:"inputs"`
	Targets       []string     `hcl:"targets,optional"`
	Frozen        bool         `hcl:"frozen,optional"`
	Params        *ParamsBlock `hcl:"params,block"`
}

// ModelBlock designates the compiled model's inputs and outputs.
type ModelBlock struct {
	Inputs  []string `hcl:"inputs"`
	Outputs []string `hcl:"outputs"`
}

// Pipeline represents a `pipeline` block.
type Pipeline struct {
	Name   string      `hcl:"name,label"`
	Inputs []*Input    `hcl:"input,block"`
	Steps  []*Step     `hcl:"step,block"`
	Model  *ModelBlock `hcl:"model,block"`
}

// PipelineConfig represents the top-level structure of a pipeline file.
type PipelineConfig struct {
	Pipeline *Pipeline `hcl:"pipeline,block"`
	Body     hcl.Body  `hcl:",remain"`
}
