package repositories

import (
	"delivery-cost-service/internal/domain"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NetworkSeed is the on-disk description of a network. JSON files are
// accepted too since JSON is valid YAML.
type NetworkSeed struct {
	Hub        string              `yaml:"hub"`
	UnitWeight float64             `yaml:"unit_weight"`
	CostRate   float64             `yaml:"cost_rate"`
	Warehouses map[string][]string `yaml:"warehouses"`
	Distances  []DistanceSeed      `yaml:"distances"`
}

// DistanceSeed is one directed distance entry. No inverse is implied.
type DistanceSeed struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Distance float64 `yaml:"distance"`
}

// Read and parse a network seed file.
func LoadNetworkSeed(path string) (domain.NetworkConfig, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network seed: read %q: %w", path, err)
	}

	var seed NetworkSeed
	if err := yaml.Unmarshal(bytes, &seed); err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network seed: parse %q: %w", path, err)
	}

	cfg, err := seed.Config()
	if err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network seed: %q: %w", path, err)
	}
	return cfg, nil
}

// Convert the seed to a NetworkConfig, rejecting duplicate directed entries.
func (s NetworkSeed) Config() (domain.NetworkConfig, error) {
	cfg := domain.NetworkConfig{
		Hub:        strings.TrimSpace(s.Hub),
		Warehouses: make(map[string][]string, len(s.Warehouses)),
		Distances:  make(map[domain.Edge]float64, len(s.Distances)),
		UnitWeight: s.UnitWeight,
		CostRate:   s.CostRate,
	}

	for w, products := range s.Warehouses {
		cfg.Warehouses[strings.TrimSpace(w)] = append([]string(nil), products...)
	}

	for i, d := range s.Distances {
		e := domain.Edge{Origin: strings.TrimSpace(d.From), Destination: strings.TrimSpace(d.To)}
		if e.Origin == "" || e.Destination == "" {
			return domain.NetworkConfig{}, fmt.Errorf("distance at index %d: from and to are required", i+1)
		}
		if _, ok := cfg.Distances[e]; ok {
			return domain.NetworkConfig{}, fmt.Errorf("distance at index %d: duplicate entry %s", i+1, e)
		}
		cfg.Distances[e] = d.Distance
	}

	return cfg, nil
}
