package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/teamspace/backend/pkg/logger"
)

var loggerOnce sync.Once

func setupNotifier(t *testing.T) *RedisNotifier {
	t.Helper()
	loggerOnce.Do(logger.Init)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisNotifierWithClient(client, "test:changes")
}

func TestPublishSubscribeRoundtrip(t *testing.T) {
	notifier := setupNotifier(t)

	events, stop := notifier.Subscribe()
	defer stop()

	// PSubscribe confirmation races with the first publish; give it a moment.
	time.Sleep(50 * time.Millisecond)

	notifier.Publish(TableFiles, OpInsert)
	notifier.Publish(TableMembers, OpDelete)

	got := make([]Event, 0, 2)
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed early, got %v", got)
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", got)
		}
	}

	if got[0].Table != TableFiles || got[0].Op != OpInsert {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].Table != TableMembers || got[1].Op != OpDelete {
		t.Errorf("second event = %+v", got[1])
	}
}

func TestSubscribeStopClosesChannel(t *testing.T) {
	notifier := setupNotifier(t)

	events, stop := notifier.Subscribe()
	stop()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatalf("expected no event after stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected event channel to close after stop")
	}
}

func TestSubscriberScopedToPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	ours := NewRedisNotifierWithClient(client, "app-a")
	theirs := NewRedisNotifierWithClient(client, "app-b")

	events, stop := ours.Subscribe()
	defer stop()
	time.Sleep(50 * time.Millisecond)

	theirs.Publish(TableFiles, OpInsert)
	ours.Publish(TableSubfolders, OpUpdate)

	select {
	case ev := <-events:
		if ev.Table != TableSubfolders {
			t.Fatalf("received event from foreign prefix: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
}
