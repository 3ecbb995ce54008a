package services

import (
	"roomkeeper/services/logger"
	"roomkeeper/services/notification"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServiceOptions carries the shared dependencies of the entity services.
// Cache and Notifier are optional.
type ServiceOptions struct {
	DB       *gorm.DB
	Cache    *Cache
	Logger   logger.Logger
	Notifier notification.Service
}

func (o ServiceOptions) withDefaults() ServiceOptions {
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

func (o ServiceOptions) publish(entity, action string, id uint) {
	if o.Notifier == nil {
		return
	}
	event := notification.Event{Entity: entity, Action: action, ID: id}
	if err := o.Notifier.Publish(event); err != nil {
		o.Logger.Warn("publish event failed",
			zap.String("entity", entity), zap.String("action", action), zap.Uint("id", id), zap.Error(err))
	}
}
