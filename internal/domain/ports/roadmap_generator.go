package ports

import "context"

// RoadmapGenerator produces a phased roadmap document for a project.
// onDelta, when non-nil, receives each streamed text fragment as it
// arrives so callers can render progress live.
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, projectName, description string, onDelta func(string)) (string, error)
}
