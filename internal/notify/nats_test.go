package notify

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

// startNATS runs an in-process NATS server for the duration of the test.
func startNATS(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{DontListen: true})
	require.NoError(t, err)
	go ns.Start()
	if !ns.ReadyForConnections(4 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func connectInProcess(t *testing.T, ns *server.Server) *nats.Conn {
	t.Helper()
	nc, err := Connect("", nats.InProcessServer(ns))
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	return nc
}

func TestNATSPublisher_PublishesOnSubject(t *testing.T) {
	ns := startNATS(t)
	nc := connectInProcess(t, ns)

	sub, err := nc.SubscribeSync(DefaultSubject)
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	pub := NewNATSPublisher(nc, "", nil)
	require.Equal(t, DefaultSubject, pub.Subject())
	pub.Notify(context.Background())

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	require.Empty(t, msg.Data)
}

func TestNATSPublisher_ClosedConnection(t *testing.T) {
	ns := startNATS(t)
	nc := connectInProcess(t, ns)
	nc.Close()

	// Must not panic or block.
	NewNATSPublisher(nc, "custom.subject", nil).Notify(context.Background())
}

func TestRelay_ForwardsToBroadcaster(t *testing.T) {
	ns := startNATS(t)
	publisherConn := connectInProcess(t, ns)
	relayConn := connectInProcess(t, ns)

	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Relay(ctx, relayConn, "okrboard.test", b) }()

	// Relay subscribes asynchronously; publish until the signal arrives.
	pub := NewNATSPublisher(publisherConn, "okrboard.test", nil)
	require.Eventually(t, func() bool {
		pub.Notify(context.Background())
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)

	stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}
