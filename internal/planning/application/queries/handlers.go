package queries

import (
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
)

var _ sharedApplication.QueryHandler[GetWeeklyPlanQuery, *WeeklyPlanView] = (*GetWeeklyPlanHandler)(nil)

var _ sharedApplication.QueryHandler[ExportPlanQuery, []byte] = (*ExportPlanHandler)(nil)
