package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportPending  = "pending"
	ReportResolved = "resolved"
)

type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null" json:"reporter_id"`
	ReportedID uuid.UUID `gorm:"type:uuid;not null" json:"reported_id"`

	Type   string `gorm:"size:50;not null" json:"type"`
	Reason string `gorm:"type:text;not null" json:"reason"`

	Status          string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes"`
	ResolvedBy      *uuid.UUID `gorm:"type:uuid" json:"resolved_by"`
	ResolvedAt      *time.Time `json:"resolved_at"`

	Reporter User `gorm:"foreignKey:ReporterID" json:"reporter"`
	Reported User `gorm:"foreignKey:ReportedID" json:"reported"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
