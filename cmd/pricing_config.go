package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/datacenter-sim/datacenter-sim/sim"
)

// Define struct for YAML
type pricingConfig struct {
	VMTypes []sim.VMType `yaml:"vm_types"`
}

// GetVMTypes loads the VMType-to-billing-rate table from a YAML file.
func GetVMTypes(path string) ([]sim.VMType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read pricing file: %w", err)
	}

	var cfg pricingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse pricing file %s: %w", path, err)
	}
	if len(cfg.VMTypes) == 0 {
		return nil, fmt.Errorf("pricing file %s defines no vm_types", path)
	}
	for _, t := range cfg.VMTypes {
		if t.HourlyRate < 0 {
			return nil, fmt.Errorf("pricing file %s: type %q has negative hourly rate", path, t.Name)
		}
	}
	return cfg.VMTypes, nil
}
