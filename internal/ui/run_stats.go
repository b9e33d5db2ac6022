package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/i18n"
)

// PrintRunStats summarizes a finished codex run below its output.
func PrintRunStats(result *models.CodexResult, t *i18n.Translations) {
	if result == nil {
		return
	}
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Print("📊 ")
	fmt.Printf("%s: %s", t.GetMessage("ui.duration", 0, nil), result.Duration.Round(10*time.Millisecond))
	fmt.Printf(" | %s: %d", t.GetMessage("ui.exit_code", 0, nil), result.ExitCode)
	fmt.Printf(" | %s: %d\n", t.GetMessage("ui.output_bytes", 0, nil), len(result.Output))
}
