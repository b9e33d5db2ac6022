package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/swerner/grepo2/internal/errors"
)

const (
	fileName          = "CHANGELOG.md"
	unreleasedHeading = "## Unreleased"
	fileHeader        = "# Changelog\n\n" + unreleasedHeading + "\n"

	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

var markers = map[string]string{
	LevelInfo:    "ℹ️",
	LevelSuccess: "✅",
	LevelWarning: "⚠️",
	LevelError:   "❌",
}

// Append inserts a timestamped entry at the top of the Unreleased section
// of the repository's CHANGELOG.md, creating the file or the section when
// missing. Newest entries come first.
func Append(repoPath, message, level string) error {
	path := filepath.Join(repoPath, fileName)

	marker, ok := markers[level]
	if !ok {
		marker = "•"
	}
	entry := fmt.Sprintf("- %s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), marker, message)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		data = []byte(insertEntry(string(data), entry))
	case os.IsNotExist(err):
		data = []byte(fileHeader + entry)
	default:
		return apperrors.ErrChangelogWrite.WithError(err).WithContext("path", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.ErrChangelogWrite.WithError(err).WithContext("path", path)
	}
	return nil
}

func insertEntry(content, entry string) string {
	idx := strings.Index(content, unreleasedHeading)
	if idx < 0 {
		return fileHeader + entry + "\n" + content
	}

	insertAt := idx + len(unreleasedHeading)
	if insertAt < len(content) && content[insertAt] == '\n' {
		insertAt++
	} else {
		entry = "\n" + entry
	}
	return content[:insertAt] + entry + content[insertAt:]
}
