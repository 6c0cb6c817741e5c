package contracts

import "context"

// ArchiveStorage keeps a snapshot of a record before destructive operations.
type ArchiveStorage interface {
	StoreSnapshot(ctx context.Context, objectName string, record map[string]interface{}) error
}
