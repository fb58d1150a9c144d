package relay

import "errors"

// Помилки обробки одного кадру. Жодна з них не закриває з'єднання:
// сесія перетворює їх на текстове повідомлення тому ж клієнту.
var (
	// ErrNotAuthorized: a chat frame arrived before the connection
	// presented a valid token.
	ErrNotAuthorized = errors.New("websocket not authorized")
	// ErrSenderMismatch: the claimed sender field does not match the
	// identity the connection authorized as.
	ErrSenderMismatch = errors.New("sender does not match authorized user")
	// ErrStoreFailure: the chat store rejected a persistence call.
	ErrStoreFailure = errors.New("chat store failure")
)
