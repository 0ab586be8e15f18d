package job

import (
	"io"
	"os"
	"strings"

	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/common"
)

// ClearLogsJob keeps the log file from growing without bound: the current
// file replaces the previous one and is then truncated.
type ClearLogsJob struct {
	path func() string
}

func NewClearLogsJob() *ClearLogsJob {
	return &ClearLogsJob{path: logger.GetLogFilePath}
}

func prevLogPath(path string) string {
	return strings.TrimSuffix(path, ".log") + ".prev.log"
}

// Run is called by the cron scheduler.
func (j *ClearLogsJob) Run() {
	defer common.Recover("clear logs job")
	if err := rotate(j.path()); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}

func rotate(path string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(prevLogPath(path), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	// the logger writes in append mode, so truncating under it is safe
	return os.Truncate(path, 0)
}
