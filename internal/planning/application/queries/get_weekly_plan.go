package queries

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// GetWeeklyPlanQuery reads the stored plan. From and To optionally limit the
// dates returned and must be given together.
type GetWeeklyPlanQuery struct {
	From string
	To   string
}

func (GetWeeklyPlanQuery) QueryName() string { return "planning.get_weekly_plan" }

// CacheKey identifies the rendered view in the plan cache.
func (q GetWeeklyPlanQuery) CacheKey() string {
	if q.From == "" && q.To == "" {
		return "weekly:all"
	}
	return "weekly:" + q.From + ":" + q.To
}

// SlotView is one slot of the weekly plan.
type SlotView struct {
	TimeSlot    string  `json:"time_slot"`
	ItemID      string  `json:"item_id"`
	ItemType    string  `json:"item_type"`
	ItemName    string  `json:"item_name"`
	SubjectName string  `json:"subject_name"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority,omitempty"`
	Hours       float64 `json:"hours"`
}

// DayView groups the slots of one date.
type DayView struct {
	Date       string     `json:"date"`
	DayName    string     `json:"day_name"`
	Weekend    bool       `json:"weekend"`
	TotalHours float64    `json:"total_hours"`
	Slots      []SlotView `json:"slots"`
}

// WeeklyPlanView is the stored plan grouped by date in calendar order.
type WeeklyPlanView struct {
	Days         []DayView `json:"days"`
	SlotCount    int       `json:"slot_count"`
	TotalHours   float64   `json:"total_hours"`
	WeekendHours float64   `json:"weekend_hours"`
}

// GetWeeklyPlanHandler handles GetWeeklyPlanQuery.
type GetWeeklyPlanHandler struct {
	planRepo  domain.PlanRepository
	directory domain.SubjectDirectory
	cache     domain.PlanCache
	logger    *slog.Logger
}

// NewGetWeeklyPlanHandler creates a new handler. directory and cache may be nil.
func NewGetWeeklyPlanHandler(planRepo domain.PlanRepository, directory domain.SubjectDirectory, cache domain.PlanCache, logger *slog.Logger) *GetWeeklyPlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetWeeklyPlanHandler{planRepo: planRepo, directory: directory, cache: cache, logger: logger}
}

// Handle executes the query.
func (h *GetWeeklyPlanHandler) Handle(ctx context.Context, query GetWeeklyPlanQuery) (*WeeklyPlanView, error) {
	if view, ok := h.cached(ctx, query.CacheKey()); ok {
		return view, nil
	}

	slots, err := h.load(ctx, query)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	if h.directory != nil {
		if names, err = h.directory.SubjectNames(ctx); err != nil {
			return nil, err
		}
	}

	view := buildView(domain.GroupByDate(slots), names)
	h.store(ctx, query.CacheKey(), view)
	return view, nil
}

func (h *GetWeeklyPlanHandler) load(ctx context.Context, query GetWeeklyPlanQuery) ([]domain.PlanSlot, error) {
	if query.From == "" && query.To == "" {
		return h.planRepo.FindAll(ctx)
	}
	if query.From == "" || query.To == "" {
		return nil, domain.ErrMissingDates
	}

	from, err := domain.ParseDate(query.From)
	if err != nil {
		return nil, err
	}
	to, err := domain.ParseDate(query.To)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, domain.ErrStartAfterEnd
	}
	return h.planRepo.FindByDateRange(ctx, from, to)
}

func buildView(days []domain.PlannedDay, names map[string]string) *WeeklyPlanView {
	view := &WeeklyPlanView{Days: make([]DayView, 0, len(days))}
	for _, day := range days {
		dv := DayView{
			Date:       domain.FormatDate(day.Date),
			DayName:    day.DayName,
			Weekend:    domain.IsWeekend(day.Date),
			TotalHours: day.TotalHours,
			Slots:      make([]SlotView, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			dv.Slots = append(dv.Slots, SlotView{
				TimeSlot:    slot.TimeSlot,
				ItemID:      slot.ItemID,
				ItemType:    slot.ItemType.String(),
				ItemName:    slot.ItemName,
				SubjectName: resolveSubject(slot, names),
				Category:    slot.Category(),
				Priority:    slot.Priority.String(),
				Hours:       slot.Hours,
			})
		}
		view.Days = append(view.Days, dv)
		view.SlotCount += len(day.Slots)
		view.TotalHours += day.TotalHours
		if dv.Weekend {
			view.WeekendHours += day.TotalHours
		}
	}
	return view
}

// resolveSubject prefers the current name from the coursework stores and
// falls back to the name captured when the plan was generated.
func resolveSubject(slot domain.PlanSlot, names map[string]string) string {
	if name, ok := names[domain.SubjectKey(slot.ItemType, slot.ItemID)]; ok && name != "" {
		return name
	}
	if slot.SubjectName != "" {
		return slot.SubjectName
	}
	if slot.ItemType == domain.CategorySubject {
		return slot.ItemName
	}
	return ""
}

func (h *GetWeeklyPlanHandler) cached(ctx context.Context, key string) (*WeeklyPlanView, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "plan cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var view WeeklyPlanView
	if err := json.Unmarshal(raw, &view); err != nil {
		h.logger.WarnContext(ctx, "discarding corrupt plan cache entry", "key", key, "error", err)
		return nil, false
	}
	return &view, true
}

func (h *GetWeeklyPlanHandler) store(ctx context.Context, key string, view *WeeklyPlanView) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, raw); err != nil {
		h.logger.WarnContext(ctx, "plan cache write failed", "key", key, "error", err)
	}
}
