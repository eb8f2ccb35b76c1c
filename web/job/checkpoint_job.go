// Package job contains the panel's scheduled maintenance tasks. Each job
// implements cron.Job and is registered by the web server.
package job

import (
	"finanzas-ui/database"
	"finanzas-ui/logger"
	"finanzas-ui/util/common"

	"go.uber.org/atomic"
)

// CheckpointJob flushes the sqlite WAL into the main database file so a
// copy of the file is always a complete backup.
type CheckpointJob struct {
	running atomic.Bool
}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")

	if !j.running.CompareAndSwap(false, true) {
		logger.Warning("checkpoint job still running, skipping this run")
		return
	}
	defer j.running.Store(false)

	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
