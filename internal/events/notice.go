package events

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/trivia-browser/internal/browser"
)

// NoticePublisher turns controller notices into bus events
type NoticePublisher struct {
	publisher EventPublisher
	logger    *slog.Logger
}

func NewNoticePublisher(publisher EventPublisher, logger *slog.Logger) *NoticePublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoticePublisher{publisher: publisher, logger: logger}
}

func (p *NoticePublisher) Notify(ctx context.Context, n browser.Notice) {
	p.publish(ctx, EventNotice, n)
}

// QuestionDeleted records a delete the store accepted
func (p *NoticePublisher) QuestionDeleted(ctx context.Context, id int, mode browser.Mode) {
	p.publish(ctx, EventQuestionDeleted, QuestionDeletedEvent{QuestionID: id, Mode: mode.String()})
}

// ExportWritten records a finished spreadsheet export
func (p *NoticePublisher) ExportWritten(ctx context.Context, path string, questions int) {
	p.publish(ctx, EventExportWritten, ExportWrittenEvent{Path: path, Questions: questions})
}

func (p *NoticePublisher) publish(ctx context.Context, eventType string, data interface{}) {
	event, err := NewEvent(eventType, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to build event", "event_type", eventType, "error", err)
		return
	}
	if err := p.publisher.PublishEvent(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish event",
			"event_id", event.ID,
			"event_type", eventType,
			"error", err)
	}
}

// NoticeFrom extracts the notice carried by a browser.notice event
func NoticeFrom(event *Event) (browser.Notice, bool) {
	if event == nil || event.Type != EventNotice {
		return browser.Notice{}, false
	}
	var n browser.Notice
	if err := event.DecodeData(&n); err != nil {
		return browser.Notice{}, false
	}
	return n, true
}
