package service

import (
	"context"

	"github.com/Skotchmaster/leave_management/internal/logging"
)

// publish is best effort: the request already succeeded, so failures are only logged.
func publish(ctx context.Context, p Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(context.WithoutCancel(ctx), topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "key", key, "error", err)
	}
}
