package syncer

import (
	"context"
	"dirmirror/internal/model"
)

// AuditLog receives the human-readable record of every action a cycle takes.
type AuditLog interface {
	Append(message string)
}

// Cycle performs one full synchronization pass.
type Cycle interface {
	Run(ctx context.Context) model.CycleSummary
}
