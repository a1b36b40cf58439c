package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/printflow/printflow-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PrintJob represents a production job, usually tied to an invoice. Its
// completion percentage and production status are derived from the stages
// by the workflow aggregator unless progress is manually overridden.
type PrintJob struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	InvoiceID  *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Title      string     `gorm:"size:255;not null" json:"title"`

	ProductionStatus     enum.ProductionStatus `gorm:"default:0" json:"production_status"`
	CompletionPercentage int                   `gorm:"default:0" json:"completion_percentage"`
	// ManualProgress marks the percentage as operator-set; the aggregator
	// leaves it alone until the flag is cleared.
	ManualProgress bool `gorm:"default:false" json:"manual_progress"`

	DueDate   *time.Time     `gorm:"type:date" json:"due_date,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company  Company           `gorm:"foreignKey:CompanyID" json:"-"`
	Invoice  *Invoice          `gorm:"foreignKey:InvoiceID" json:"-"`
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Stages   []ProductionStage `gorm:"foreignKey:PrintJobID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

// BeforeCreate generates a UUID before creating a new print job
func (j *PrintJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrintJob model
func (PrintJob) TableName() string {
	return "print_jobs"
}

// StageNote is one audit entry in a stage's note log.
type StageNote struct {
	At      time.Time `json:"at"`
	ActorID uuid.UUID `json:"actor_id"`
	Event   string    `json:"event"`
	Note    string    `json:"note,omitempty"`
}

// ProductionStage is one step in a print job's workflow. Transitions are
// applied exclusively through the workflow machine.
type ProductionStage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PrintJobID uuid.UUID `gorm:"type:uuid;not null;index" json:"print_job_id"`
	StageName  string    `gorm:"size:255;not null" json:"stage_name"`
	// StageOrder is strictly increasing within a job; auto-assigned at
	// creation (max+1) when left unset.
	StageOrder  int              `gorm:"not null;default:0" json:"stage_order"`
	StageStatus enum.StageStatus `gorm:"default:0" json:"stage_status"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	// ActualDurationSecs is recorded when the stage completes.
	ActualDurationSecs *int64 `json:"actual_duration_secs,omitempty"`

	RequiresCustomerApproval bool       `gorm:"default:false" json:"requires_customer_approval"`
	ApprovedBy               *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	CustomerApprovedAt       *time.Time `json:"customer_approved_at,omitempty"`
	RejectionReason          *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Notes is the append-only audit log of transitions ([]StageNote).
	Notes datatypes.JSON `gorm:"type:jsonb" json:"notes,omitempty"`

	// Version guards concurrent stage transitions (optimistic locking).
	Version int `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PrintJob PrintJob `gorm:"foreignKey:PrintJobID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new production stage
func (s *ProductionStage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductionStage model
func (ProductionStage) TableName() string {
	return "production_stages"
}

// NoteLog decodes the stage's note log. An empty or missing log decodes to
// an empty slice.
func (s *ProductionStage) NoteLog() ([]StageNote, error) {
	if len(s.Notes) == 0 {
		return []StageNote{}, nil
	}
	var notes []StageNote
	if err := json.Unmarshal(s.Notes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// AppendNote adds an audit entry to the stage's note log.
func (s *ProductionStage) AppendNote(note StageNote) error {
	notes, err := s.NoteLog()
	if err != nil {
		return err
	}
	notes = append(notes, note)
	raw, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	s.Notes = datatypes.JSON(raw)
	return nil
}
