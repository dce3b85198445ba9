package main

import (
	"log"
	"os"
	"strings"

	"bin2carray/cmd"
	"bin2carray/pkg/logging"
	"bin2carray/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := logging.Setup(false, version.Name, version.Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.Logger

	if err := cmd.Execute(logger); err != nil {
		logger.Error("bin2carray execution failed", zap.Error(err))
		syncLogger(logger)
		os.Exit(1)
	}
	syncLogger(logger)
}

// syncLogger flushes the logger when stderr can be synced.
func syncLogger(logger *zap.Logger) {
	// Sync on a pipe or character device returns EINVAL; only try on terminals and files.
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		lowerErr := strings.ToLower(err.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", err)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
