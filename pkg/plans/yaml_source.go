package plans

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSource implements the Source interface by reading a YAML plan table
// from disk on every Load call.
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source that loads plans from the YAML file at path.
//
// Expected structure:
//
//	plans:
//	  free:
//	    name: Free
//	    limits:
//	      policies: 3
//	      executions: 50
//	    capabilities: [api_access]
//	    pii_tier: basic
//	    trial_days: 0
//	    public: true
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

type yamlPlanFile struct {
	Plans map[string]yamlPlan `yaml:"plans"`
}

type yamlPlan struct {
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description"`
	Limits       map[string]int64 `yaml:"limits"`
	Capabilities []string         `yaml:"capabilities"`
	PIITier      string           `yaml:"pii_tier"`
	Public       bool             `yaml:"public"`
	TrialDays    int              `yaml:"trial_days"`
}

// Load reads and parses the YAML plan file.
func (s *yamlSource) Load(ctx context.Context) (map[string]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var file yamlPlanFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(file.Plans) == 0 {
		return nil, errors.Join(ErrFailedToParseYAML, ErrNoPlansConfigured)
	}

	result := make(map[string]Plan, len(file.Plans))
	for id, yp := range file.Plans {
		limits := make(map[Resource]int64, len(yp.Limits))
		for res, limit := range yp.Limits {
			limits[Resource(res)] = limit
		}

		capabilities := make([]Capability, 0, len(yp.Capabilities))
		for _, c := range yp.Capabilities {
			capabilities = append(capabilities, Capability(c))
		}

		result[id] = Plan{
			ID:           id,
			Name:         yp.Name,
			Description:  yp.Description,
			Limits:       limits,
			Capabilities: capabilities,
			PIITier:      PIITier(yp.PIITier),
			Public:       yp.Public,
			TrialDays:    yp.TrialDays,
		}
	}

	return result, nil
}
