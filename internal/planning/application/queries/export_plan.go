package queries

import (
	"bytes"
	"context"
	"io"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// PlanEncoder renders stored slots into a document format.
type PlanEncoder interface {
	Encode(w io.Writer, slots []domain.PlanSlot) error
}

// ExportPlanQuery renders the stored plan as an iCalendar document.
type ExportPlanQuery struct{}

func (ExportPlanQuery) QueryName() string { return "planning.export_plan" }

// ExportPlanHandler handles ExportPlanQuery.
type ExportPlanHandler struct {
	planRepo domain.PlanRepository
	encoder  PlanEncoder
}

// NewExportPlanHandler creates a new ExportPlanHandler.
func NewExportPlanHandler(planRepo domain.PlanRepository, encoder PlanEncoder) *ExportPlanHandler {
	return &ExportPlanHandler{planRepo: planRepo, encoder: encoder}
}

// Handle returns the encoded plan. An empty plan is reported as ErrPlanNotFound.
func (h *ExportPlanHandler) Handle(ctx context.Context, query ExportPlanQuery) ([]byte, error) {
	slots, err := h.planRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, domain.ErrPlanNotFound
	}

	var buf bytes.Buffer
	if err := h.encoder.Encode(&buf, slots); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
