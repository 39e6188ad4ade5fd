// Package core holds the repository contracts the dashboard services depend on.
package core

import (
	"context"

	"github.com/target/cipms/internal/domain/model"
)

// CatalogRepository defines read access to placement data behind the role dashboards.
// Service implementations depend on this interface, not on a concrete store.
type CatalogRepository interface {
	ListInternships(ctx context.Context) ([]*model.Internship, error)
	ListApplications(ctx context.Context) ([]*model.Application, error)
	ListInterviews(ctx context.Context) ([]*model.Interview, error)
	// Directory returns head counts that are not derived from applications.
	Directory(ctx context.Context) (model.Directory, error)
}
