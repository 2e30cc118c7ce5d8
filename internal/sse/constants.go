package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// Stream settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// ProgressInterval is the minimum gap between progress events
	ProgressInterval = time.Second
)

// Event types
const (
	EventTypeConnected      = "connected"
	EventTypeSearchStarted  = "search.started"
	EventTypeSearchProgress = "search.progress"
	EventTypeSearchFinished = "search.finished"
	EventTypeKeepalive      = "keepalive"
)

// TypesQueryParam holds a comma separated list of event types to receive
const TypesQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected    = "Event stream client connected"
	LogMsgClientDisconnected = "Event stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting event"
	LogMsgEventDropped       = "Event dropped, buffer full"
	LogMsgWriteError         = "Failed to write event"
)

// ErrMsgStreamingUnsupported is returned when the response cannot be flushed
const ErrMsgStreamingUnsupported = "Streaming not supported"
