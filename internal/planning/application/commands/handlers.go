package commands

import (
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
)

var _ sharedApplication.CommandHandler[GeneratePlanCommand, *GeneratePlanResult] = (*GeneratePlanHandler)(nil)

var _ sharedApplication.CommandHandler[ClearPlanCommand, *ClearPlanResult] = (*ClearPlanHandler)(nil)

var _ sharedApplication.CommandHandler[SyncCalendarCommand, *domain.CalendarSyncReport] = (*SyncCalendarHandler)(nil)
