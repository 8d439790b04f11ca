package domain

import (
	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "StudyPlan"

	RoutingKeyPlanGenerated = "planning.plan.generated"
	RoutingKeyPlanCleared   = "planning.plan.cleared"
)

// PlanGenerated is emitted after a new plan replaced the stored one.
type PlanGenerated struct {
	sharedDomain.BaseEvent
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	SlotCount           int     `json:"slot_count"`
	TotalHoursNeeded    float64 `json:"total_hours_needed"`
	TotalAvailableHours float64 `json:"total_available_hours"`
	CompressionFactor   float64 `json:"compression_factor"`
	RulesTriggered      int     `json:"rules_triggered"`
}

// NewPlanGenerated creates a PlanGenerated event.
func NewPlanGenerated(planID uuid.UUID, start, end string, plan Plan) *PlanGenerated {
	return &PlanGenerated{
		BaseEvent:           sharedDomain.NewBaseEvent(planID, AggregateType, RoutingKeyPlanGenerated),
		StartDate:           start,
		EndDate:             end,
		SlotCount:           plan.SlotCount(),
		TotalHoursNeeded:    plan.TotalHoursNeeded,
		TotalAvailableHours: plan.TotalAvailableHours,
		CompressionFactor:   plan.CompressionFactor,
		RulesTriggered:      len(plan.RulesTriggered),
	}
}

// PlanCleared is emitted after the stored plan was deleted.
type PlanCleared struct {
	sharedDomain.BaseEvent
	SlotsRemoved int `json:"slots_removed"`
}

// NewPlanCleared creates a PlanCleared event.
func NewPlanCleared(planID uuid.UUID, removed int) *PlanCleared {
	return &PlanCleared{
		BaseEvent:    sharedDomain.NewBaseEvent(planID, AggregateType, RoutingKeyPlanCleared),
		SlotsRemoved: removed,
	}
}
