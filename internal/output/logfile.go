package output

import (
	"os"
	"path/filepath"
)

// LogFilePath returns the destination for file logging: SHIPIT_LOG_FILE when
// set, otherwise ~/.shipit/logs/shipit.log.
func LogFilePath() string {
	if path := os.Getenv("SHIPIT_LOG_FILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "shipit.log"
	}
	return filepath.Join(home, ".shipit", "logs", "shipit.log")
}
