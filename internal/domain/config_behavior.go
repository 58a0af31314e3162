package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.AI.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.AI.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.AI.DefaultModel)
}

// FindModelByName searches for a model by its name
// Returns the model definition and true if found, empty model and false otherwise
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// GetModelCount returns the total number of configured models
func (c *Config) GetModelCount() int {
	return len(c.Models)
}

// IsAIEnabled checks if content augmentation is switched on and at least one
// model is configured
func (c *Config) IsAIEnabled() bool {
	return c.AI.Enabled && len(c.Models) > 0
}

// GetSessionRequestLimit returns the per-session generation request ceiling
func (c *Config) GetSessionRequestLimit() int {
	if c.AI.SessionRequestLimit <= 0 {
		return AugmenterSessionLimit
	}
	return c.AI.SessionRequestLimit
}

// GetMinRequestInterval returns the minimum delay between generation requests
func (c *Config) GetMinRequestInterval() time.Duration {
	if c.AI.MinIntervalMS <= 0 {
		return AugmenterMinInterval
	}
	return time.Duration(c.AI.MinIntervalMS) * time.Millisecond
}

// GetCatalogRefreshInterval returns how long fetched tables stay valid
func (c *Config) GetCatalogRefreshInterval() time.Duration {
	if c.Catalog.RefreshHours <= 0 {
		return CatalogRefreshInterval
	}
	return time.Duration(c.Catalog.RefreshHours) * time.Hour
}

// GetCatalogTimeout returns the HTTP timeout for catalog fetches
func (c *Config) GetCatalogTimeout() time.Duration {
	if c.Catalog.TimeoutSeconds <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// GetRetainDays returns the number of days persisted records survive cleanup
func (c *Config) GetRetainDays() int {
	if c.Store.RetainDays <= 0 {
		return DefaultRetainDays
	}
	return c.Store.RetainDays
}

// SetDefaultModel changes the default model
// Returns an error if the model is not configured
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("model %s not found", name)
	}
	c.AI.DefaultModel = name
	return nil
}

// AddModel appends a model definition
// Returns an error if a model with the same name already exists
func (c *Config) AddModel(model ModelDefinition) error {
	if c.HasModel(model.Name) {
		return fmt.Errorf("model %s already exists", model.Name)
	}
	c.Models = append(c.Models, model)
	return nil
}

// RemoveModel deletes a model definition by name
func (c *Config) RemoveModel(name string) error {
	for i, model := range c.Models {
		if model.Name == name {
			c.Models = append(c.Models[:i], c.Models[i+1:]...)
			if c.AI.DefaultModel == name {
				c.AI.DefaultModel = ""
				if len(c.Models) > 0 {
					c.AI.DefaultModel = c.Models[0].Name
				}
			}
			return nil
		}
	}
	return fmt.Errorf("model %s not found", name)
}

// ValidateConsistency checks the internal consistency of the configuration
// Returns an error if there are inconsistencies (e.g., default model doesn't exist)
func (c *Config) ValidateConsistency() error {
	if c.AI.DefaultModel != "" && !c.HasModel(c.AI.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.AI.DefaultModel)
	}

	if c.AI.Enabled && len(c.Models) == 0 {
		return fmt.Errorf("ai is enabled but no models are configured")
	}

	if c.Catalog.CategoriesURL == "" || c.Catalog.DomainsURL == "" {
		return fmt.Errorf("catalog urls must not be empty")
	}

	return nil
}
