package relay

// Conn is one live bidirectional connection as the registry and router see
// it: an opaque handle that accepts best-effort outbound payloads. The
// concrete transport (websocket) lives behind this interface so the auth
// state machine and routing logic are testable without I/O.
type Conn interface {
	// ID returns the unique identifier of the connection.
	ID() string
	// TrySend queues a payload for writing without blocking. It reports
	// false when the connection is already closed or its outbound buffer
	// is full; a slow receiver must never stall the sending goroutine.
	TrySend(payload []byte) bool
}
