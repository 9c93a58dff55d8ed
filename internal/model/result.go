package model

import "time"

type FileResult struct {
	Entry   FileEntry
	Action  SyncAction
	SrcPath string
	DstPath string
	Err     error
}

type CycleSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []FileResult
	// Err is set when the source root could not be listed.
	Err     error
	Aborted bool
}

func (s CycleSummary) Copied() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}

	return n
}

func (s CycleSummary) Overwritten() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil && r.Action == ActionOverwrite {
			n++
		}
	}

	return n
}

func (s CycleSummary) Failed() int {
	return len(s.Results) - s.Copied()
}

func (s CycleSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
