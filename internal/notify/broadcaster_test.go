package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBroadcaster_NotifiesAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	b.Notify(context.Background())

	for _, ch := range []<-chan struct{}{first, second} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("subscriber was not notified")
		}
	}
}

func TestBroadcaster_CoalescesBursts(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < 5; i++ {
		b.Notify(context.Background())
	}

	<-ch
	select {
	case <-ch:
		t.Fatal("burst was not coalesced")
	default:
	}
}

func TestBroadcaster_Cancel(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	require.Equal(t, 1, b.Len())

	cancel()
	cancel()
	require.Zero(t, b.Len())

	_, open := <-ch
	require.False(t, open)

	b.Notify(context.Background())
}

func TestBroadcaster_ConcurrentUse(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	b := NewBroadcaster()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch, cancel := b.Subscribe()
			defer cancel()
			b.Notify(context.Background())
			<-ch
		}()
	}
	wg.Wait()
	require.Zero(t, b.Len())
}

type countingNotifier struct {
	mu sync.Mutex
	n  int
}

func (c *countingNotifier) Notify(context.Context) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestMulti(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	Multi{a, nil, b}.Notify(context.Background())
	require.Equal(t, 1, a.count())
	require.Equal(t, 1, b.count())
}
