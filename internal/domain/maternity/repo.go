package maternity

import (
	"context"
)

// SnapshotRepository persists and reloads full store snapshots. Save must be
// atomic: a reader never observes a half-written snapshot. Load returns
// (nil, nil) when no snapshot has been saved yet.
type SnapshotRepository interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}
