package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/mfglog/mfglog/sim"
)

// FlowSpec is the YAML flow definition. Stage order in the file is the
// traversal order. Run-parameter fields (resources, batch_size,
// rework_probability) are optional defaults; explicitly-set CLI flags
// override them.
type FlowSpec struct {
	Stages          []StageSpec       `yaml:"stages"`
	Pivot           string            `yaml:"pivot"`
	ReworkOverrides map[string]string `yaml:"rework_overrides,omitempty"`

	Resources         []string   `yaml:"resources,omitempty"`
	BatchSize         *RangeSpec `yaml:"batch_size,omitempty"`
	ReworkProbability *float64   `yaml:"rework_probability,omitempty"`
}

// StageSpec defines a single stage's behavior parameters.
type StageSpec struct {
	Name     string    `yaml:"name"`
	Duration []float64 `yaml:"duration"` // [min, max] in minutes
	Chance   float64   `yaml:"chance"`
	ReworkTo string    `yaml:"rework_to,omitempty"`
}

// RangeSpec is an inclusive integer interval.
type RangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LoadFlowSpec reads and parses a YAML flow definition file.
func LoadFlowSpec(path string) (*FlowSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flow spec: %w", err)
	}
	var spec FlowSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing flow spec: %w", err)
	}
	return &spec, nil
}

// ToFlow converts the spec into a validated sim.Flow. All structural errors
// (bad durations, forward rework references, unknown pivot) surface here.
func (s *FlowSpec) ToFlow() (*sim.Flow, error) {
	stages := make([]sim.Stage, len(s.Stages))
	for i, st := range s.Stages {
		if len(st.Duration) != 2 {
			return nil, fmt.Errorf("stage %q: duration must be [min, max], got %v", st.Name, st.Duration)
		}
		stages[i] = sim.Stage{
			Name:        st.Name,
			DurationMin: st.Duration[0],
			DurationMax: st.Duration[1],
			Chance:      st.Chance,
			ReworkTo:    st.ReworkTo,
		}
	}
	return sim.NewFlow(stages, s.Pivot, s.ReworkOverrides)
}

// applyRunDefaults copies the spec's optional run parameters into opts for
// every flag the user did not set explicitly.
func (s *FlowSpec) applyRunDefaults(cmd *cobra.Command, opts *sim.Options) {
	if len(s.Resources) > 0 && !cmd.Flags().Changed("resources") {
		opts.Resources = s.Resources
	}
	if s.BatchSize != nil && !cmd.Flags().Changed("batch-min") && !cmd.Flags().Changed("batch-max") {
		opts.BatchSizeMin = s.BatchSize.Min
		opts.BatchSizeMax = s.BatchSize.Max
	}
	if s.ReworkProbability != nil && !cmd.Flags().Changed("rework-prob") {
		opts.ReworkProbability = *s.ReworkProbability
	}
}
