package openrouter

// Prompt templates. The roadmap prompts pin the exact line grammar the
// roadmap parser consumes; changing the format here breaks issue sync.
const (
	roadmapSystemPrompt = `You are an experienced software architect and project manager.
The README you receive is the binding requirements document for the project.
Identify every requirement, functional and non-functional, and produce a
professional technical roadmap following standard engineering practice:
agile phases, CI/CD, feature implementation, automated tests, code reviews
and documentation.
Format the result as Markdown with clearly separated phases: 'PHASE X – <title>'.
Each phase contains at least ten tasks. The feature implementation phase
contains as many tasks as needed to cover every requirement from the README.
Every task uses the format:
[ ] Short title: DETAILED technical instruction with at least three full sentences.`

	roadmapUserPromptTemplate = "Here is the complete README.md for project %s:\n\n" +
		"```markdown\n%s\n```\n\n" +
		"Generate roadmap.md from it in the format:\n" +
		"PHASE X – <phase title>\n" +
		"[ ] Short title: DETAILED technical instruction with at least three full sentences.\n"

	analysisPromptTemplate = `Analyze whether the following GitHub issue has been fully resolved:

ISSUE TITLE: %s
ISSUE DESCRIPTION: %s

CODEX OUTPUT: %s

Respond with a JSON object of exactly this structure:
{
    "completed": true/false,
    "confidence": 0-100,
    "reason": "detailed justification",
    "next_steps": ["step 1", "step 2"],
    "recommendation": "close" or "keep_open"
}`
)
