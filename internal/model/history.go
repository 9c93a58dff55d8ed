package model

import (
	"time"

	"gorm.io/gorm"
)

type SyncStatus string

const (
	SyncSuccess SyncStatus = "SUCCESS"
	SyncFailed  SyncStatus = "FAILED"
)

// Cycle is one finished synchronization pass.
type Cycle struct {
	gorm.Model
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt time.Time `gorm:"not null"`
	Copied     int
	Failed     int
	Aborted    bool
	ErrMsg     string
}

// History is the outcome of a single file within a Cycle.
type History struct {
	gorm.Model
	CycleID  uint       `gorm:"index;not null"`
	Status   SyncStatus `gorm:"not null"`
	Action   SyncAction `gorm:"not null"`
	SrcPath  string     `gorm:"not null"`
	DstPath  string     `gorm:"not null"`
	ErrMsg   string
	SyncedAt time.Time `gorm:"not null"`
}
