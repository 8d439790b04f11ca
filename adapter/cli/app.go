package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	internalApp "github.com/felixgeelhaar/studyplanner/internal/app"
	courseworkCommands "github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	courseworkQueries "github.com/felixgeelhaar/studyplanner/internal/coursework/application/queries"
	estimationServices "github.com/felixgeelhaar/studyplanner/internal/estimation/application/services"
	notificationCommands "github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	notificationQueries "github.com/felixgeelhaar/studyplanner/internal/notifications/application/queries"
	planningCommands "github.com/felixgeelhaar/studyplanner/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/studyplanner/internal/planning/application/queries"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/google/uuid"
)

// ErrNotInitialized is returned by commands that need the database when the
// container could not be built.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	// Coursework
	Assignments *courseworkCommands.AssignmentHandler
	Exams       *courseworkCommands.ExamHandler
	Subjects    *courseworkCommands.SubjectHandler
	Coursework  *courseworkQueries.Handler

	// Planning
	GeneratePlan *planningCommands.GeneratePlanHandler
	ClearPlan    *planningCommands.ClearPlanHandler
	SyncCalendar *planningCommands.SyncCalendarHandler
	WeeklyPlan   *planningQueries.GetWeeklyPlanHandler
	ExportPlan   *planningQueries.ExportPlanHandler

	// Notifications
	DetectClashes     *notificationCommands.DetectClashesHandler
	GenerateReminders *notificationCommands.GenerateRemindersHandler
	Notifications     *notificationCommands.ManageHandler
	NotificationViews *notificationQueries.Handler

	// Estimation
	Estimator *estimationServices.Estimator

	// Admin
	ClearAll *internalApp.ClearAllHandler

	// Defaults
	HoursPerDay     float64
	IncludeSubjects bool
	Clock           planningDomain.Clock

	flush func(ctx context.Context) error
}

// NewApp collects the handlers the commands use from container.
func NewApp(c *internalApp.Container) *App {
	return &App{
		Assignments:       c.AssignmentHandler,
		Exams:             c.ExamHandler,
		Subjects:          c.SubjectHandler,
		Coursework:        c.CourseworkQueries,
		GeneratePlan:      c.GeneratePlanHandler,
		ClearPlan:         c.ClearPlanHandler,
		SyncCalendar:      c.SyncCalendarHandler,
		WeeklyPlan:        c.GetWeeklyPlanHandler,
		ExportPlan:        c.ExportPlanHandler,
		DetectClashes:     c.DetectClashesHandler,
		GenerateReminders: c.GenerateRemindersHandler,
		Notifications:     c.ManageNotifications,
		NotificationViews: c.NotificationQueries,
		Estimator:         c.Estimator,
		ClearAll:          c.ClearAllHandler,
		HoursPerDay:       c.Config.PlanHoursPerDay,
		IncludeSubjects:   c.Config.PlanIncludeSubjects,
		Clock:             c.Clock,
		flush:             c.FlushEvents,
	}
}

// FlushEvents delivers events recorded by the last command.
func (a *App) FlushEvents(ctx context.Context) error {
	if a.flush == nil {
		return nil
	}
	return a.flush(ctx)
}

// Global app instance (set by main)
var globalApp *App

// SetApp sets the global CLI app instance.
func SetApp(app *App) {
	globalApp = app
}

// GetApp returns the global CLI app instance.
func GetApp() *App {
	return globalApp
}

// RequireApp returns the app or ErrNotInitialized.
func RequireApp() (*App, error) {
	if globalApp == nil {
		return nil, ErrNotInitialized
	}
	return globalApp, nil
}

// JSONOutput reports whether --json was given.
func JSONOutput() bool {
	return jsonOutput
}

// SetJSONOutput overrides the --json flag, mainly for tests.
func SetJSONOutput(enabled bool) {
	jsonOutput = enabled
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ParseID parses a record id argument.
func ParseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

// FormatHours renders hours without trailing zeros.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
