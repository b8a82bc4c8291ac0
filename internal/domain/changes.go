package domain

import "slices"

// DetectProjectChanges compares an existing project against an incoming
// replacement and returns the sparse set of fields that differ. Returns an
// empty change-set when nothing differs, in which case the caller must skip
// history writing entirely.
func DetectProjectChanges(existing, incoming Project) ProjectChanges {
	var changes ProjectChanges

	if existing.Name != incoming.Name {
		changes.Name = &FieldChange{From: existing.Name, To: incoming.Name}
	}
	if existing.Status != incoming.Status {
		changes.Status = &FieldChange{From: string(existing.Status), To: string(incoming.Status)}
	}
	if existing.Commentary != incoming.Commentary {
		changes.Commentary = &FieldChange{From: existing.Commentary, To: incoming.Commentary}
	}
	if existing.Phase != incoming.Phase {
		changes.Phase = &FieldChange{From: string(existing.Phase), To: string(incoming.Phase)}
	}
	if existing.DeliveryGroupID != incoming.DeliveryGroupID {
		changes.DeliveryGroupID = &FieldChange{From: existing.DeliveryGroupID, To: incoming.DeliveryGroupID}
	}
	if existing.DeliveryPartnerID != incoming.DeliveryPartnerID {
		changes.DeliveryPartnerID = &FieldChange{From: existing.DeliveryPartnerID, To: incoming.DeliveryPartnerID}
	}
	if !slices.Equal(existing.Tags, incoming.Tags) {
		changes.Tags = &TagsChange{From: existing.Tags, To: incoming.Tags}
	}

	// Every non-empty entry carries a status pair, even when the status
	// itself did not move.
	if !changes.Empty() && changes.Status == nil {
		changes.Status = &FieldChange{From: string(existing.Status), To: string(existing.Status)}
	}

	return changes
}

// DetectAssessmentChanges compares an existing assessment against an
// incoming one, with the same sparse semantics and no-op status rule as
// DetectProjectChanges.
func DetectAssessmentChanges(existing, incoming Assessment) AssessmentChanges {
	var changes AssessmentChanges

	if existing.Status != incoming.Status {
		changes.Status = &FieldChange{From: string(existing.Status), To: string(incoming.Status)}
	}
	if existing.Commentary != incoming.Commentary {
		changes.Commentary = &FieldChange{From: existing.Commentary, To: incoming.Commentary}
	}

	if !changes.Empty() && changes.Status == nil {
		changes.Status = &FieldChange{From: string(existing.Status), To: string(existing.Status)}
	}

	return changes
}

// CreationProjectChanges builds the change-set seeded into history when a
// project is first created: every populated field recorded from empty.
func CreationProjectChanges(created Project) ProjectChanges {
	return DetectProjectChanges(Project{}, created)
}

// CreationAssessmentChanges builds the change-set seeded into history when
// an assessment is first written for its key.
func CreationAssessmentChanges(created Assessment) AssessmentChanges {
	return DetectAssessmentChanges(Assessment{}, created)
}
