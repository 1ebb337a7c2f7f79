package backend

import (
	"context"
	"fmt"
	"log/slog"

	"famboard/internal/familyapi/memory"
	"famboard/internal/familyapi/rest"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new data source factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(_ context.Context, config Config) (*SourceResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid source type: %s", config.Type)
	}

	switch config.Type {
	case RESTSource:
		return f.createRESTSource(config)
	case MemorySource:
		return f.createMemorySource(config)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}
}

func (f *DefaultFactory) createRESTSource(config Config) (*SourceResult, error) {
	if err := config.Session.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session for rest source: %w", err)
	}

	client := rest.NewClient(config.Session, nil)

	f.logger.Info("Initialized REST data source",
		"base_url", config.Session.APIBaseURL,
		"family_id", config.Session.FamilyID)

	return &SourceResult{
		Source:  client,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createMemorySource(config Config) (*SourceResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := memory.NewFromFiles(dataDir)

	f.logger.Info("Initialized memory data source", "data_directory", dataDir)

	return &SourceResult{
		Source:  store,
		Cleanup: nil,
	}, nil
}
