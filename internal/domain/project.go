package domain

import "time"

// Phase is the delivery phase a project is currently in.
type Phase string

const (
	PhaseDiscovery   Phase = "DISCOVERY"
	PhaseAlpha       Phase = "ALPHA"
	PhaseBeta        Phase = "BETA"
	PhasePrivateBeta Phase = "PRIVATE_BETA"
	PhasePublicBeta  Phase = "PUBLIC_BETA"
	PhaseLive        Phase = "LIVE"
)

// Phases lists the accepted delivery phases.
var Phases = []Phase{PhaseDiscovery, PhaseAlpha, PhaseBeta, PhasePrivateBeta, PhasePublicBeta, PhaseLive}

// ValidPhase reports whether p is an accepted delivery phase.
func ValidPhase(p Phase) bool {
	for _, candidate := range Phases {
		if p == candidate {
			return true
		}
	}
	return false
}

// Project is a delivery project under assurance. IDs are caller supplied
// short codes rather than generated UUIDs, matching how the portfolio
// refers to projects elsewhere.
//
// StandardsSummary is a materialized view over the project's live
// assessments. It is owned by the aggregator: nothing else writes it, and
// a plain field update always re-injects the previous value before
// persisting so a naive full-object PUT cannot clobber it.
type Project struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Status            Status            `json:"status"`
	Commentary        string            `json:"commentary"`
	Phase             Phase             `json:"phase,omitempty"`
	DeliveryGroupID   string            `json:"deliveryGroupId,omitempty"`
	DeliveryPartnerID string            `json:"deliveryPartnerId,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	UpdateDate        *time.Time        `json:"updateDate,omitempty"`
	StandardsSummary  []StandardSummary `json:"standardsSummary"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// StandardSummary is the per-standard rollup of every profession's
// assessment of a project against that standard.
type StandardSummary struct {
	StandardID  string              `json:"standardId"`
	Status      Status              `json:"status"`
	Commentary  string              `json:"commentary"`
	LastUpdated time.Time           `json:"lastUpdated"`
	Professions []ProfessionSummary `json:"professions"`
}

// ProfessionSummary is one profession's contribution to a standard rollup,
// retained for drill-down.
type ProfessionSummary struct {
	ProfessionID string    `json:"professionId"`
	Status       Status    `json:"status"`
	Commentary   string    `json:"commentary,omitempty"`
	LastUpdated  time.Time `json:"lastUpdated"`
}
