package testing

import (
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// StartEmbeddedNATS starts an embedded NATS server for testing.
//
// The server runs in-process on a random available port, so parallel tests
// never conflict. Only core NATS is enabled; the allocation service uses plain
// request/reply and needs no JetStream storage.
//
// Parameters:
//   - tb: Testing context for logging and cleanup
//
// Returns:
//   - *server.Server: The embedded NATS server instance
//   - *nats.Conn: Connected NATS client (closed automatically on test completion)
//
// Example:
//
//	func TestResponder(t *testing.T) {
//	    _, nc := greentest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	    // Server and connection are automatically cleaned up
//	}
func StartEmbeddedNATS(tb testing.TB) (*server.Server, *nats.Conn) {
	tb.Helper()

	opts := &server.Options{
		Host:    "127.0.0.1",
		Port:    -1, // Use random available port
		LogFile: "",
		Debug:   false,
		Trace:   false,
		NoLog:   true, // Suppress all server logs in tests
		NoSigs:  true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		tb.Fatalf("Failed to create embedded NATS server: %v", err)
	}

	// Start server in background goroutine
	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		tb.Fatal("Embedded NATS server not ready within timeout")
	}

	// Registered before Connect so the server outlives every connection cleanup.
	tb.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	nc := Connect(tb, ns)

	return ns, nc
}

// Connect opens an additional client connection to an embedded server.
//
// The connection is closed automatically when the test completes. Use it to
// run several responders, or a responder and a client, on separate connections.
//
// Parameters:
//   - tb: Testing context for logging and cleanup
//   - ns: Server returned by StartEmbeddedNATS
//
// Returns:
//   - *nats.Conn: Connected NATS client
func Connect(tb testing.TB, ns *server.Server) *nats.Conn {
	tb.Helper()

	nc, err := nats.Connect(ns.ClientURL(),
		nats.Timeout(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(3),
	)
	if err != nil {
		tb.Fatalf("Failed to connect to embedded NATS server: %v", err)
	}

	tb.Cleanup(nc.Close)

	return nc
}
