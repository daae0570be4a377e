package chat

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/models.yaml
var modelsFixture []byte

// DefaultModel is selected until the user picks another one.
const DefaultModel = "kimi-k2-instruct-0905"

var ErrUnknownModel = errors.New("unknown model")

// ModelInfo describes a backend model the user can switch to.
type ModelInfo struct {
	Name       string `yaml:"model_name"`
	Provider   string `yaml:"provider"`
	Parameters string `yaml:"parameters"`
	IsNew      bool   `yaml:"is_new"`
}

// ModelCatalog is the ordered list of selectable models.
type ModelCatalog struct {
	models []ModelInfo
}

func NewModelCatalog(models []ModelInfo) *ModelCatalog {
	cp := make([]ModelInfo, len(models))
	copy(cp, models)
	return &ModelCatalog{models: cp}
}

// DefaultModelCatalog returns the bundled model list.
func DefaultModelCatalog() *ModelCatalog {
	var models []ModelInfo
	if err := yaml.Unmarshal(modelsFixture, &models); err != nil {
		panic(fmt.Sprintf("chat: invalid models fixture: %v", err))
	}
	return NewModelCatalog(models)
}

func (c *ModelCatalog) Models() []ModelInfo {
	result := make([]ModelInfo, len(c.models))
	copy(result, c.models)
	return result
}

// Find matches a model by name, ignoring case.
func (c *ModelCatalog) Find(name string) (ModelInfo, error) {
	for _, m := range c.models {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return ModelInfo{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// Next returns the model after name, wrapping around.
func (c *ModelCatalog) Next(name string) ModelInfo {
	if len(c.models) == 0 {
		return ModelInfo{}
	}
	for i, m := range c.models {
		if strings.EqualFold(m.Name, name) {
			return c.models[(i+1)%len(c.models)]
		}
	}
	return c.models[0]
}
