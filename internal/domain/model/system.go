package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is the payload served from the public_info table under the
// "announcement" key. The shape is fixed by the client.
type Announcement struct {
	Type      string               `json:"type"`
	Closeable bool                 `json:"closeable"`
	Props     AnnouncementProps    `json:"props"`
	Actions   []AnnouncementAction `json:"actions"`
}

type AnnouncementProps struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AnnouncementAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Article struct {
	ID        string
	Title     string
	Content   string
	Status    int
	CreatedAt time.Time
}

// BugReport stores the client-submitted report as a JSON blob; status 0
// means unreviewed.
type BugReport struct {
	ID          string
	Description string
	Status      int
	CreatedAt   time.Time
}

func NewBugReport(description string) *BugReport {
	return &BugReport{
		ID:          uuid.NewString(),
		Description: description,
		CreatedAt:   time.Now(),
	}
}
