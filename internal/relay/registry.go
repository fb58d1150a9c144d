// Package relay implements the real-time messaging core: the registry of
// live connections, the per-connection authorization state machine, and the
// router that delivers messages to live peers and persists them to the
// chat store.
package relay

import "sync"

// Registry tracks every open connection and, for each, whether and as whom
// it is authorized. It is the only state shared between connection
// goroutines; all access goes through the mutex so that reads and writes
// are linearizable with respect to each other.
type Registry struct {
	mu sync.RWMutex

	// identities maps every registered connection to its authorized
	// username, or "" while the connection is still unauthenticated.
	identities map[Conn]string
	// byIdentity holds, per username, the live connections authorized as
	// that user in authorization order (most recent last). One user may
	// hold several simultaneous connections.
	byIdentity map[string][]Conn
}

func NewRegistry() *Registry {
	return &Registry{
		identities: make(map[Conn]string),
		byIdentity: make(map[string][]Conn),
	}
}

// Register adds the connection in the unauthenticated state.
func (r *Registry) Register(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities[c] = ""
}

// Authorize binds the connection to the given username. Re-authorization
// overwrites the previous binding. It returns the presence transitions it
// caused: wentOnline is the username that gained its first live connection,
// wentOffline the username that lost its last one (possible when a
// connection re-authorizes under a different name). Empty strings mean no
// transition. Unregistered connections are ignored.
func (r *Registry) Authorize(c Conn, username string) (wentOnline, wentOffline string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.identities[c]
	if !ok {
		return "", ""
	}
	if prev != "" {
		if r.detach(c, prev) && prev != username {
			wentOffline = prev
		}
	}

	if len(r.byIdentity[username]) == 0 {
		wentOnline = username
	}
	r.identities[c] = username
	r.byIdentity[username] = append(r.byIdentity[username], c)
	return wentOnline, wentOffline
}

// IsAuthorized reports whether the connection has presented a valid token.
func (r *Registry) IsAuthorized(c Conn) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.identities[c] != ""
}

// Identity returns the username the connection is authorized as.
func (r *Registry) Identity(c Conn) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username := r.identities[c]
	return username, username != ""
}

// FindLiveConn returns a connection currently authorized as the given user,
// or false if none is live. When the user holds several connections the
// most recently authorized one wins.
func (r *Registry) FindLiveConn(username string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := r.byIdentity[username]
	if len(conns) == 0 {
		return nil, false
	}
	return conns[len(conns)-1], true
}

// Remove deletes all registry state for the connection. It is safe to call
// for connections that never authorized. It returns the username the
// connection was bound to and whether that user just lost their last live
// connection.
func (r *Registry) Remove(c Conn) (username string, wentOffline bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, ok := r.identities[c]
	if !ok {
		return "", false
	}
	delete(r.identities, c)
	if username != "" {
		wentOffline = r.detach(c, username)
	}
	return username, wentOffline
}

// detach removes c from the username's connection list and reports whether
// the list became empty. Caller must hold the write lock.
func (r *Registry) detach(c Conn, username string) bool {
	conns := r.byIdentity[username]
	for i, other := range conns {
		if other == c {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(conns) == 0 {
		delete(r.byIdentity, username)
		return true
	}
	r.byIdentity[username] = conns
	return false
}
