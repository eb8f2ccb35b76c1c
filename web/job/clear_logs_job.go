package job

import (
	"os"

	"finanzas-ui/logger"
	"finanzas-ui/util/common"
)

// ClearLogsJob rotates the panel log: the current file is appended to a
// .prev file and truncated.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

func (j *ClearLogsJob) Run() {
	defer common.Recover("clear logs job")

	logPath := logger.GetLogFilePath()
	prevPath := logPath + ".prev"

	prevFile, err := os.OpenFile(prevPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	defer prevFile.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	if _, err := prevFile.Write(data); err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}

	if err := os.Truncate(logPath, 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
