package commands

import (
	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
)

var _ sharedApplication.CommandHandler[DetectClashesCommand, *DetectClashesResult] = (*DetectClashesHandler)(nil)

var _ sharedApplication.CommandHandler[GenerateRemindersCommand, []*domain.Notification] = (*GenerateRemindersHandler)(nil)
