// Package notifysvc delivers core notifications to the log, an in-process feed and Redis.
package notifysvc

import (
	"context"
	"sync"

	"github.com/muhammadsami84343/ecampus/core"
)

// Multi fans a notification out to every notifier.
type Multi []core.Notifier

func (m Multi) Notify(n core.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// LogNotifier logs notifications at the level matching their severity.
type LogNotifier struct {
	logger core.Logger
}

func NewLogNotifier(logger core.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (ln LogNotifier) Notify(n core.Notification) {
	msg := "[" + n.Topic + "] " + n.Message
	switch n.Severity {
	case core.SeverityError:
		ln.logger.Error(msg)
	case core.SeverityWarning:
		ln.logger.Warn(msg)
	default:
		ln.logger.Info(msg)
	}
}

// Reader returns recent notifications, newest first.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]core.Notification, error)
}

// Feed keeps the latest notifications in memory, newest first.
type Feed struct {
	mu    sync.RWMutex
	items []core.Notification // ring buffer
	next  int
	full  bool
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 50
	}
	return &Feed{items: make([]core.Notification, size)}
}

func (f *Feed) Notify(n core.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[f.next] = n
	f.next = (f.next + 1) % len(f.items)
	if f.next == 0 {
		f.full = true
	}
}

// Recent returns up to limit notifications, newest first; limit <= 0 returns all of them.
func (f *Feed) Recent(limit int) []core.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.next
	if f.full {
		n = len(f.items)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	res := make([]core.Notification, 0, limit)
	for i := 1; i <= limit; i++ {
		res = append(res, f.items[(f.next-i+len(f.items))%len(f.items)])
	}
	return res
}

// Reader exposes the feed as a Reader.
func (f *Feed) Reader() Reader {
	return feedReader{f}
}

type feedReader struct {
	feed *Feed
}

func (r feedReader) Recent(_ context.Context, limit int) ([]core.Notification, error) {
	return r.feed.Recent(limit), nil
}
