package model

// FileEntry is a file found directly inside the source root, identified by
// its base name only.
type FileEntry struct {
	Name string
	Path string
}

type SyncAction string

const (
	// ActionOverwrite replaces a file already present at the destination.
	ActionOverwrite SyncAction = "OVERWRITE"
	// ActionCreate copies a file that the destination does not have yet.
	ActionCreate SyncAction = "CREATE"
)

// PlannedAction pairs an entry with where it must land. The concrete
// SyncAction is decided right before the copy runs.
type PlannedAction struct {
	Entry   FileEntry
	DstPath string
}
