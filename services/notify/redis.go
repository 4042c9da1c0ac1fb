package notifysvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/muhammadsami84343/ecampus/core"
)

const (
	DefaultRedisKey = "ecampus:notifications"
	redisMaxLen     = 200
	redisQueueSize  = 64
	redisTimeout    = time.Second
)

// NewRedisClient connects to redis with short timeouts.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  redisTimeout,
		WriteTimeout: redisTimeout,
	})
}

// RedisNotifier pushes notifications onto a capped Redis list, newest first, for other processes to display.
// Pushes happen on a background goroutine; Notify drops notifications when the queue is full.
type RedisNotifier struct {
	client *redis.Client
	key    string
	logger core.Logger

	queue chan core.Notification
	done  chan struct{}
}

func NewRedisNotifier(client *redis.Client, key string, logger core.Logger) *RedisNotifier {
	if key == "" {
		key = DefaultRedisKey
	}
	rn := &RedisNotifier{
		client: client,
		key:    key,
		logger: logger,
		queue:  make(chan core.Notification, redisQueueSize),
		done:   make(chan struct{}),
	}
	go rn.run()
	return rn
}

func (rn *RedisNotifier) Notify(n core.Notification) {
	select {
	case rn.queue <- n:
	default:
		rn.logger.Warn("redis notifier: queue full, dropping notification", n)
	}
}

func (rn *RedisNotifier) run() {
	defer close(rn.done)
	for n := range rn.queue {
		ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
		if err := rn.push(ctx, n); err != nil {
			rn.logger.Error("redis notifier: push failed", err)
		}
		cancel()
	}
}

func (rn *RedisNotifier) push(ctx context.Context, n core.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "marshalling notification")
	}
	_, err = rn.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, rn.key, data)
		pipe.LTrim(ctx, rn.key, 0, redisMaxLen-1)
		return nil
	})
	return errors.Wrap(err, "pushing notification")
}

// Recent reads up to limit notifications, newest first.
func (rn *RedisNotifier) Recent(ctx context.Context, limit int) ([]core.Notification, error) {
	if limit <= 0 || limit > redisMaxLen {
		limit = redisMaxLen
	}
	raw, err := rn.client.LRange(ctx, rn.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "reading notifications")
	}
	res := make([]core.Notification, 0, len(raw))
	for _, s := range raw {
		var n core.Notification
		if err = json.Unmarshal([]byte(s), &n); err != nil {
			return nil, errors.Wrap(err, "unmarshalling notification")
		}
		res = append(res, n)
	}
	return res, nil
}

// Ping verifies redis connectivity.
func (rn *RedisNotifier) Ping(ctx context.Context) error {
	return errors.Wrap(rn.client.Ping(ctx).Err(), "pinging redis")
}

// Close flushes queued notifications. Notify must not be called afterwards.
func (rn *RedisNotifier) Close() error {
	close(rn.queue)
	<-rn.done
	return rn.client.Close()
}
