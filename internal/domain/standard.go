package domain

import "time"

// ServiceStandard is a named assurance criterion projects are assessed
// against. Standards are soft deleted: a deleted standard disappears from
// default listings but stays addressable by id so existing history and
// assessments keep resolving.
type ServiceStandard struct {
	ID          string     `json:"id"`
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	DeletedBy   string     `json:"deletedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Deleted reports whether the standard has been soft deleted.
func (s ServiceStandard) Deleted() bool {
	return s.DeletedAt != nil
}

// Assessable reports whether new assessments may reference this standard.
func (s ServiceStandard) Assessable() bool {
	return s.Active && !s.Deleted()
}

// Profession is a discipline that independently assesses projects against
// standards. Soft deleted the same way standards are.
type Profession struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy string     `json:"deletedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Deleted reports whether the profession has been soft deleted.
func (p Profession) Deleted() bool {
	return p.DeletedAt != nil
}
