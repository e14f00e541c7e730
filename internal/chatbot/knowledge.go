package chatbot

import (
	_ "embed"
	"fmt"

	"github.com/vcscsvcscs/healthguide/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed diseases.yaml
var diseasesYAML []byte

type knowledgeBase struct {
	Diseases []model.Disease `yaml:"diseases"`
}

// LoadDiseases returns the embedded disease reference table in its declared order
func LoadDiseases() ([]model.Disease, error) {
	return ParseDiseases(diseasesYAML)
}

// ParseDiseases decodes a disease table document
func ParseDiseases(data []byte) ([]model.Disease, error) {
	var kb knowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("failed to parse disease table: %w", err)
	}

	for i, d := range kb.Diseases {
		if d.Name == "" {
			return nil, fmt.Errorf("disease %d has no name", i)
		}
		if len(d.Symptoms) == 0 {
			return nil, fmt.Errorf("disease %q has no symptoms", d.Name)
		}
	}

	return kb.Diseases, nil
}
