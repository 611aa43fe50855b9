package baseline

import (
	"fmt"

	"github.com/weiweivv2222/pykeen/core/triples"
)

// Model names accepted by Build.
const (
	ModelPseudoType         = "PseudoType"
	ModelEntityCoOccurrence = "EntityCoOccurrence"
	ModelSoftInverseTriple  = "SoftInverseTriple"
)

// Config selects a baseline variant and its construction parameters.
// Normalize applies to the co-occurrence baselines, Threshold to the
// soft-inverse baseline; the unused field is ignored by each variant.
type Config struct {
	Model     string  `yaml:"model"`
	Normalize bool    `yaml:"normalize"`
	Threshold float64 `yaml:"threshold"`
}

// DefaultConfigs mirrors the standard benchmark lineup: the two normalized
// co-occurrence baselines plus a tightly-thresholded soft-inverse baseline.
func DefaultConfigs() []Config {
	return []Config{
		{Model: ModelPseudoType, Normalize: true},
		{Model: ModelEntityCoOccurrence, Normalize: true},
		{Model: ModelSoftInverseTriple, Threshold: 0.97},
	}
}

// Build constructs the configured baseline from the factory's triples.
func Build(cfg Config, f *triples.Factory) (Scorer, error) {
	switch cfg.Model {
	case ModelPseudoType:
		return NewPseudoType(f, cfg.Normalize)
	case ModelEntityCoOccurrence:
		return NewEntityCoOccurrence(f, cfg.Normalize)
	case ModelSoftInverseTriple:
		return NewSoftInverseTriple(f, cfg.Threshold)
	default:
		return nil, fmt.Errorf("unknown baseline model %q", cfg.Model)
	}
}
