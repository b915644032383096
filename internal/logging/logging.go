package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath builds a log file path for one run using OS-appropriate path separators.
func LogFilePath(logsDir, toolName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", toolName, sessionStart.Format("20060102_150405")),
	)
}
