package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/datacenter-sim/datacenter-sim/sim/workload"
)

// GetScenario loads a scenario definition from a YAML file.
func GetScenario(path string) (*workload.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read scenario file: %w", err)
	}

	var sc workload.Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("unable to parse scenario file %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = "custom"
	}
	if len(sc.VMs) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no VMs", path)
	}
	return &sc, nil
}
