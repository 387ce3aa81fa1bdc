package database

import "time"

// StoredImage is a face image row as stored in the images table.
type StoredImage struct {
	ID          string
	Description string
	Data        []byte
	Filename    string
	Name        string
	Relation    string
	CreatedAt   time.Time
}

// ImageMatch is the narrowed view of a stored image returned by exact-byte
// matching. Raw bytes are deliberately not included in the response.
type ImageMatch struct {
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	Description string `json:"description"`
}

// Task is a reminder task row as stored in the tasks table.
type Task struct {
	ID        string
	Text      string
	CreatedAt time.Time
}
