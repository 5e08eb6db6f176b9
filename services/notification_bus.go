package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"family_law_portal_go/models"

	"github.com/redis/go-redis/v9"
)

// NotificationChannel is the pub/sub channel carrying new intake events
const NotificationChannel = "notifications:intake"

// NotificationBus fans new notification events out to live dashboard streams
type NotificationBus interface {
	Publish(ctx context.Context, event models.NotificationEvent) error
	// Subscribe delivers events until ctx ends or cancel is called
	Subscribe(ctx context.Context) (<-chan models.NotificationEvent, func(), error)
	Close() error
}

// NewNotificationBus uses Redis when a URL is configured and falls back to an
// in-process bus otherwise.
func NewNotificationBus(redisURL string) NotificationBus {
	if redisURL == "" {
		log.Println("Notification bus: in-memory")
		return NewMemoryBus()
	}

	bus, err := NewRedisBus(redisURL)
	if err != nil {
		log.Printf("[WARNING] Failed to initialize Redis notification bus: %v. Falling back to in-memory bus.", err)
		return NewMemoryBus()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bus.Ping(ctx); err != nil {
		log.Printf("[WARNING] Redis connection test failed: %v. Falling back to in-memory bus.", err)
		bus.Close()
		return NewMemoryBus()
	}

	log.Println("Notification bus: Redis")
	return bus
}

// MemoryBus delivers events to subscribers in the same process. Slow
// subscribers miss events rather than block publishers.
type MemoryBus struct {
	mu     sync.Mutex
	subs   map[int]chan models.NotificationEvent
	nextID int
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]chan models.NotificationEvent)}
}

func (b *MemoryBus) Publish(ctx context.Context, event models.NotificationEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("notification bus closed")
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context) (<-chan models.NotificationEvent, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, fmt.Errorf("notification bus closed")
	}

	id := b.nextID
	b.nextID++
	ch := make(chan models.NotificationEvent, 16)
	b.subs[id] = ch

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel, nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	return nil
}

// RedisBus carries events over Redis pub/sub so every server instance sees them
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus parses a redis:// URL and creates the client
func NewRedisBus(redisURL string) (*RedisBus, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return NewRedisBusFromClient(redis.NewClient(opts)), nil
}

func NewRedisBusFromClient(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// Ping tests the Redis connection
func (b *RedisBus) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (b *RedisBus) Publish(ctx context.Context, event models.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := b.client.Publish(ctx, NotificationChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context) (<-chan models.NotificationEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, NotificationChannel)
	// Wait for the subscription confirmation so no event published afterwards is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to notifications: %w", err)
	}

	subCtx, stop := context.WithCancel(ctx)
	out := make(chan models.NotificationEvent, 16)

	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event models.NotificationEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("[NOTIFY] Dropping malformed notification payload: %v", err)
					continue
				}
				select {
				case out <- event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return out, stop, nil
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}

// LatestWatcher remembers the last event id a consumer has seen and reports
// only events that differ from it.
type LatestWatcher struct {
	mu     sync.Mutex
	lastID string
}

// Observe returns true when event is new to this watcher
func (w *LatestWatcher) Observe(event models.NotificationEvent) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if event.ID == "" || event.ID == w.lastID {
		return false
	}
	w.lastID = event.ID
	return true
}

func (w *LatestWatcher) LastID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastID
}
