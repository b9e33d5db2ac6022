package models

type (
	// TaskRecord is one checkbox task extracted from a roadmap document.
	// Phase is the 1-based number of the PHASE heading the task appeared
	// under; Labels always carries "enhancement" followed by "phase-<n>".
	TaskRecord struct {
		Phase  int
		Title  string
		Body   string
		Labels []string
	}

	// IssueResult reports the outcome of publishing a single task as a
	// GitHub issue.
	IssueResult struct {
		TaskTitle    string
		Succeeded    bool
		RemoteNumber int
		ErrorMessage string
	}

	// SyncSummary aggregates one roadmap sync run.
	SyncSummary struct {
		Total   int
		Created int
		Results []IssueResult
	}
)
