// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Intent matching constants
const (
	// SimilarityThreshold is the minimum cosine similarity for a task to be
	// considered a match for a user utterance. Scores at or below it fall
	// back to the no-intent response.
	SimilarityThreshold = 0.1

	// CompletionPhrase marks an utterance as a task completion report.
	CompletionPhrase = "completed the task"

	// CompletionPrefix is stripped from a lowercased completion report to
	// recover the task name.
	CompletionPrefix = "i completed the task"
)

// Task retention constants
const (
	// TaskRetention is how long a task survives before the janitor purges it.
	TaskRetention = 7 * 24 * time.Hour

	// JanitorInterval is how often the background purge fires.
	JanitorInterval = 24 * time.Hour
)

// HTTP constants
const (
	// MaxRequestBody caps JSON request bodies; base64 image payloads
	// dominate, so this allows roughly a 24 MB decoded image.
	MaxRequestBody = 32 << 20

	// ImageExtension is appended to filenames derived from descriptions.
	ImageExtension = ".jpg"
)
