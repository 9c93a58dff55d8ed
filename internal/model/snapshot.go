package model

import "time"

type SchedulerStatus string

const (
	StatusIdle    SchedulerStatus = "IDLE"
	StatusRunning SchedulerStatus = "RUNNING"
	StatusWaiting SchedulerStatus = "WAITING"
)

type SchedulerSnapshot struct {
	Src       string          `json:"src"`
	Dst       string          `json:"dst"`
	Interval  time.Duration   `json:"interval"`
	Status    SchedulerStatus `json:"status"`
	StartedAt time.Time       `json:"started_at"`
	Cycles    int             `json:"cycles"`
	Copied    int             `json:"copied"`
	Failed    int             `json:"failed"`
	Skipped   int             `json:"skipped"`
	LastCycle *time.Time      `json:"last_cycle"`
}
