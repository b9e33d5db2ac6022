package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swerner/grepo2/internal/domain/models"
)

func TestParse(t *testing.T) {
	t.Run("should produce identical output on repeated calls", func(t *testing.T) {
		text := "PHASE 1 – Setup\n[ ] Init repo: Create the skeleton.\n[ ] Add CI: Wire the pipeline."

		first := Parse(text)
		second := Parse(text)

		require.Len(t, first, 2)
		assert.Equal(t, first, second)
	})

	t.Run("should skip tasks before the first phase marker", func(t *testing.T) {
		text := "[ ] Orphan: This line has no phase yet.\n" +
			"PHASE 1 – Setup\n" +
			"[ ] Init repo: Create the skeleton."

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Init repo", tasks[0].Title)
	})

	t.Run("should split title and body on the first colon", func(t *testing.T) {
		text := "PHASE 1 – Setup\n[ ] Add login: Implement OAuth flow with three sentences."

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Add login", tasks[0].Title)
		assert.Equal(t, "Implement OAuth flow with three sentences.", tasks[0].Body)
		assert.Equal(t, []string{"enhancement", "phase-1"}, tasks[0].Labels)
	})

	t.Run("should keep later colons in the body", func(t *testing.T) {
		text := "PHASE 1 – Fixes\n[ ] Fix: bug: edge case"

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Fix", tasks[0].Title)
		assert.Equal(t, "bug: edge case", tasks[0].Body)
	})

	t.Run("should strip bounding asterisks from the title", func(t *testing.T) {
		text := "PHASE 1 – Setup\n[ ] *Bold Title*: body text\n[ ] Mid*dle: stays"

		tasks := Parse(text)

		require.Len(t, tasks, 2)
		assert.Equal(t, "Bold Title", tasks[0].Title)
		assert.Equal(t, "Mid*dle", tasks[1].Title)
	})

	t.Run("should drop checkbox lines without a colon", func(t *testing.T) {
		text := "PHASE 1 – Setup\n" +
			"[ ] just a note without separator\n" +
			"[ ] Real task: with a body."

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Real task", tasks[0].Title)
	})

	t.Run("should carry the current phase until the next marker", func(t *testing.T) {
		text := "PHASE 1 – Setup\n" +
			"[ ] Init repo: Create the repository skeleton with three files.\n" +
			"PHASE 2 – Core\n" +
			"[ ] Add API: Build the REST endpoint and write integration tests.\n"

		tasks := Parse(text)

		want := []models.TaskRecord{
			{
				Phase:  1,
				Title:  "Init repo",
				Body:   "Create the repository skeleton with three files.",
				Labels: []string{"enhancement", "phase-1"},
			},
			{
				Phase:  2,
				Title:  "Add API",
				Body:   "Build the REST endpoint and write integration tests.",
				Labels: []string{"enhancement", "phase-2"},
			},
		}
		assert.Equal(t, want, tasks)
	})

	t.Run("should accept lowercase markers and empty bracket pairs", func(t *testing.T) {
		text := "phase 3 – anything\n[] Quick: task body"

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, 3, tasks[0].Phase)
		assert.Equal(t, []string{"enhancement", "phase-3"}, tasks[0].Labels)
	})

	t.Run("should tolerate CRLF line endings", func(t *testing.T) {
		text := "PHASE 1 – Setup\r\n[ ] Init repo: Create the skeleton.\r\n"

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, "Init repo", tasks[0].Title)
		assert.Equal(t, "Create the skeleton.", tasks[0].Body)
	})

	t.Run("should ignore phase-like words without a number", func(t *testing.T) {
		text := "PHASED 2 rollout\n" +
			"PHASE two\n" +
			"[ ] Orphan: still no phase seen\n" +
			"PHASE 2\n" +
			"[ ] Real: task"

		tasks := Parse(text)

		require.Len(t, tasks, 1)
		assert.Equal(t, 2, tasks[0].Phase)
		assert.Equal(t, "Real", tasks[0].Title)
	})

	t.Run("should return nothing for prose-only documents", func(t *testing.T) {
		text := "# Roadmap\n\nSome introduction.\n- a regular bullet\n"

		assert.Empty(t, Parse(text))
	})
}
