package models

import "time"

type (
	Repository struct {
		Name          string
		FullName      string
		Description   string
		Private       bool
		CloneURL      string
		HTMLURL       string
		DefaultBranch string
	}

	// RepoStatus is the porcelain view of a working tree.
	RepoStatus struct {
		Branch       string
		ChangedFiles []string
	}

	Commit struct {
		Hash    string
		Message string
		Author  string
		Date    time.Time
	}
)

func (s RepoStatus) Clean() bool {
	return len(s.ChangedFiles) == 0
}
