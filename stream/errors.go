package stream

// ProtocolError reports an event sequence violating the push/pull
// protocol, such as a second value event for one node before its end
// marker, or a stream ending inside an open layer.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return "stream protocol: " + e.Msg
}
