package domain

import "time"

// AssessmentKey identifies one profession's verdict on one project against
// one standard. The triple is unique: writing where one exists overwrites.
type AssessmentKey struct {
	ProjectID    string `json:"projectId"`
	StandardID   string `json:"standardId"`
	ProfessionID string `json:"professionId"`
}

// Assessment is one profession's current verdict on a project against a
// standard. The record mirrors the latest active history entry for its key;
// archiving that entry away entirely removes the record.
type Assessment struct {
	AssessmentKey
	Status      Status    `json:"status"`
	Commentary  string    `json:"commentary,omitempty"`
	ChangedBy   string    `json:"changedBy,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}
