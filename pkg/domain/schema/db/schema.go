package db

import "context"

// SchemaInterface tracks the version of the database schema.
type SchemaInterface interface {
	// Upgrade applies migrations newer than the current version, in order.
	Upgrade(ctx context.Context) error

	// Version is the version applied to the database. 0 for an empty database.
	Version(ctx context.Context) (int, error)

	// Latest is the newest version known to this build.
	Latest() (int, error)

	// Context derives a context which is cancelled once the database turns out
	// not to be at the Latest version.
	//
	// Servers run in this context, so that they stop instead of
	// querying tables in a shape they do not expect.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
