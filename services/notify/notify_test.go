package notifysvc

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadsami84343/ecampus/core"
)

type logLine struct {
	level, msg string
}

type testLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *testLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level, msg})
}

func (l *testLogger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *testLogger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *testLogger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *testLogger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *testLogger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

func TestLogNotifier(t *testing.T) {
	logger := &testLogger{}
	ln := NewLogNotifier(logger)

	ln.Notify(core.NewNotification("leave", core.SeveritySuccess, "submitted"))
	ln.Notify(core.NewNotification("attendance", core.SeverityWarning, "weekend"))
	ln.Notify(core.NewNotification("leave", core.SeverityError, "no balance"))

	assert.Equal(t, []logLine{
		{"info", "[leave] submitted"},
		{"warn", "[attendance] weekend"},
		{"error", "[leave] no balance"},
	}, logger.lines)
}

func TestFeed(t *testing.T) {
	feed := NewFeed(3)
	assert.Empty(t, feed.Recent(0))

	for i := 1; i <= 4; i++ {
		feed.Notify(core.NewNotification("test", core.SeverityInfo, fmt.Sprint(i)))
	}
	messages := func(ns []core.Notification) []string {
		res := make([]string, 0, len(ns))
		for _, n := range ns {
			res = append(res, n.Message)
		}
		return res
	}
	assert.Equal(t, []string{"4", "3", "2"}, messages(feed.Recent(0)))
	assert.Equal(t, []string{"4", "3"}, messages(feed.Recent(2)))
	assert.Equal(t, []string{"4", "3", "2"}, messages(feed.Recent(10)))
}

func TestFeed_Reader(t *testing.T) {
	feed := NewFeed(3)
	feed.Notify(core.NewNotification("leave", core.SeverityInfo, "first"))
	feed.Notify(core.NewNotification("leave", core.SeverityWarning, "second"))

	var reader Reader = feed.Reader()
	got, err := reader.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Message)
}

func TestMulti(t *testing.T) {
	a, b := NewFeed(5), NewFeed(5)
	Multi{a, b}.Notify(core.NewNotification("test", core.SeverityInfo, "hello"))
	assert.Len(t, a.Recent(0), 1)
	assert.Len(t, b.Recent(0), 1)
}

func TestRedisNotifier(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := NewRedisClient(addr)
	key := "ecampus:test:notifications"
	require.NoError(t, client.Del(ctx, key).Err())

	rn := NewRedisNotifier(client, key, &testLogger{})
	require.NoError(t, rn.Ping(ctx))
	rn.Notify(core.NewNotification("leave", core.SeveritySuccess, "first"))
	rn.Notify(core.NewNotification("leave", core.SeverityInfo, "second"))

	reader := &RedisNotifier{client: NewRedisClient(addr), key: key}
	require.NoError(t, rn.Close()) // flushes the queue

	got, err := reader.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)
	assert.Equal(t, core.SeveritySuccess, got[1].Severity)
	_ = reader.client.Close()
}
