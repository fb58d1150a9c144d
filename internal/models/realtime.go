package models

// Frame is the inbound JSON payload of one websocket message. A frame either
// carries a token (authorization attempt) or a chat send; the two are
// distinguished by the presence of the "token" field.
type Frame struct {
	Token    string `json:"token,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver,omitempty"`
	Message  string `json:"message,omitempty"`
}

// HasToken reports whether the frame is an authorization attempt.
func (f *Frame) HasToken() bool { return f.Token != "" }

// PushMessage is the out-of-band frame delivered to a recipient's live
// connection when a message is routed to them directly.
type PushMessage struct {
	From    string `json:"from"`
	Message string `json:"message"`
	// Time is the delivery timestamp in milliseconds.
	Time int64 `json:"time"`
}
