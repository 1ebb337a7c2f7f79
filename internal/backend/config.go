package backend

import (
	"fmt"

	"famboard/internal/config"
	"famboard/internal/core"
	"famboard/internal/session"
)

// FromAppConfig converts the application config to source config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sourceType := SourceType(appConfig.DataSource)
	if !sourceType.IsValid() {
		return Config{}, fmt.Errorf("invalid source type in config: %s", appConfig.DataSource)
	}

	sess := session.New(
		appConfig.FamilyAPIBaseURL,
		appConfig.FamilyAPIToken,
		appConfig.FamilyID,
		core.Viewer{UserID: appConfig.UserID, IsOwner: appConfig.IsOwner},
	)

	return Config{
		Type:    sourceType,
		Session: sess,

		// Memory source reads JSON fixtures from the default data directory
		DataDirectory: "data",
	}, nil
}

// Validate validates the source configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid source type: %s", c.Type)
	}

	switch c.Type {
	case RESTSource:
		if err := c.Session.Validate(); err != nil {
			return fmt.Errorf("rest source session: %w", err)
		}
	case MemorySource:
		// DataDirectory defaults to "data" if empty
	}

	return nil
}

// GetSourceTypes returns all valid source types
func GetSourceTypes() []SourceType {
	return []SourceType{RESTSource, MemorySource}
}
