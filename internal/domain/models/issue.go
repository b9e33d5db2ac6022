package models

import "time"

type (
	Issue struct {
		Number    int
		Title     string
		Body      string
		State     string
		Labels    []string
		URL       string
		CreatedAt time.Time
	}

	IssueComment struct {
		Author    string
		Body      string
		CreatedAt time.Time
	}
)
