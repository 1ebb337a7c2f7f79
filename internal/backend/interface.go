package backend

import (
	"context"

	"famboard/internal/familyapi"
	"famboard/internal/session"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// SourceResult contains the data source instance and optional cleanup function
type SourceResult struct {
	Source  familyapi.Source
	Cleanup CleanupFunc
}

// Factory creates data sources based on configuration
type Factory interface {
	// CreateSource creates a data source instance based on the provided config
	CreateSource(ctx context.Context, config Config) (*SourceResult, error)
}

// Config holds configuration for data source creation
type Config struct {
	// Source type
	Type SourceType

	// REST specific
	Session session.Session

	// Memory source specific
	DataDirectory string
}

// SourceType represents the type of data source
type SourceType string

const (
	RESTSource   SourceType = "rest"
	MemorySource SourceType = "memory"
)

// String implements fmt.Stringer
func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is valid
func (st SourceType) IsValid() bool {
	switch st {
	case RESTSource, MemorySource:
		return true
	default:
		return false
	}
}
