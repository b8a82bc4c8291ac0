package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldChange records the before and after values of a single field.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TagsChange records the before and after values of a list field. Lists
// are compared by content, so a change here always means the membership or
// ordering actually differed.
type TagsChange struct {
	From []string `json:"from"`
	To   []string `json:"to"`
}

// ProjectChanges is the sparse change-set carried by one project history
// entry. A field is present only if it actually differed, with one
// exception: whenever any field changed, Status is populated even if it did
// not, as a no-op {From: X, To: X} pair. Consumers that scan history for
// the latest status change can then rely on every entry carrying one.
type ProjectChanges struct {
	Name              *FieldChange `json:"name,omitempty"`
	Status            *FieldChange `json:"status,omitempty"`
	Commentary        *FieldChange `json:"commentary,omitempty"`
	Phase             *FieldChange `json:"phase,omitempty"`
	DeliveryGroupID   *FieldChange `json:"deliveryGroupId,omitempty"`
	DeliveryPartnerID *FieldChange `json:"deliveryPartnerId,omitempty"`
	Tags              *TagsChange  `json:"tags,omitempty"`
}

// Empty reports whether no field changed at all.
func (c ProjectChanges) Empty() bool {
	return c.Name == nil &&
		c.Status == nil &&
		c.Commentary == nil &&
		c.Phase == nil &&
		c.DeliveryGroupID == nil &&
		c.DeliveryPartnerID == nil &&
		c.Tags == nil
}

// AssessmentChanges is the sparse change-set carried by one assessment
// history entry. The same no-op status rule as ProjectChanges applies.
type AssessmentChanges struct {
	Status     *FieldChange `json:"status,omitempty"`
	Commentary *FieldChange `json:"commentary,omitempty"`
}

// Empty reports whether no field changed at all.
func (c AssessmentChanges) Empty() bool {
	return c.Status == nil && c.Commentary == nil
}

// ProjectHistory is one immutable audit record of a project mutation.
// Entries are never modified after creation except to flip Archived, and
// entries for the same project are totally ordered by Timestamp.
type ProjectHistory struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID string         `json:"projectId"`
	Timestamp time.Time      `json:"timestamp"`
	ChangedBy string         `json:"changedBy"`
	Changes   ProjectChanges `json:"changes"`
	Archived  bool           `json:"archived"`
}

// AssessmentHistory is one immutable audit record of an assessment
// mutation, keyed by the full (project, standard, profession) triple.
type AssessmentHistory struct {
	ID uuid.UUID `json:"id"`
	AssessmentKey
	Timestamp time.Time         `json:"timestamp"`
	ChangedBy string            `json:"changedBy"`
	Changes   AssessmentChanges `json:"changes"`
	Archived  bool              `json:"archived"`
}
