package roadmap

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/swerner/grepo2/internal/domain/models"
)

// Parse extracts issue tasks from a roadmap document.
//
// A line starting with the word PHASE (any case) followed by a number
// opens a phase; every task found after it carries that phase until the
// next marker. A task line is a checkbox "[ ]" whose remainder splits
// on the first colon into title and body. Lines that match neither
// grammar, tasks before the first phase marker, and checkbox lines
// without a colon are skipped without error.
//
// Parse never mutates shared state and never fails; feeding it the same
// document twice yields the same records in document order.
func Parse(text string) []models.TaskRecord {
	var tasks []models.TaskRecord

	phase := 0
	phaseSeen := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if n, ok := phaseNumber(line); ok {
			phase = n
			phaseSeen = true
			continue
		}

		rest, ok := checkboxRest(line)
		if !ok || !phaseSeen {
			continue
		}

		title, body, found := strings.Cut(rest, ":")
		if !found {
			continue
		}

		title = strings.TrimSpace(title)
		title = strings.Trim(title, "*")
		title = strings.TrimSpace(title)

		tasks = append(tasks, models.TaskRecord{
			Phase:  phase,
			Title:  title,
			Body:   strings.TrimSpace(body),
			Labels: []string{"enhancement", "phase-" + strconv.Itoa(phase)},
		})
	}

	return tasks
}

// phaseNumber matches "PHASE <n>" at the start of a trimmed line, any
// case. Text after the number ("PHASE 2 - Setup") is ignored.
func phaseNumber(line string) (int, bool) {
	if len(line) < 5 || !strings.EqualFold(line[:5], "PHASE") {
		return 0, false
	}

	rest := line[5:]
	if rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return 0, false
	}
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(rest[:digits])
	if err != nil {
		return 0, false
	}
	return n, true
}

// checkboxRest matches "[ ]" (inner whitespace optional) at the start
// of a trimmed line and returns the trimmed remainder.
func checkboxRest(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", false
	}
	rest := strings.TrimLeftFunc(line[1:], unicode.IsSpace)
	if !strings.HasPrefix(rest, "]") {
		return "", false
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return "", false
	}
	return rest, true
}
