package model

import (
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Plan is a list of patches applied in order by `depatch apply`
type Plan struct {
	Patches []PatchFields `yaml:"patches"`
}

// ParsePlan decodes a YAML plan and validates every patch in it
func ParsePlan(data []byte) ([]*PatchRequest, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, goerr.Wrap(err, "failed to parse plan YAML", goerr.T(types.ErrTagParse))
	}
	if len(plan.Patches) == 0 {
		return nil, goerr.New("plan has no patches", goerr.T(types.ErrTagInvalidRequest))
	}

	reqs := make([]*PatchRequest, 0, len(plan.Patches))
	for i, fields := range plan.Patches {
		req, err := fields.Request()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid patch in plan", goerr.V("index", i))
		}
		reqs = append(reqs, req)
	}

	return reqs, nil
}
