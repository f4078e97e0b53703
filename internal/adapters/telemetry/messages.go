package telemetry

import "time"

// MsgInitTasks announces the tasks a run is going to execute, in order.
type MsgInitTasks struct {
	Tasks []string
}

// MsgTaskStart is sent when a span starts.
type MsgTaskStart struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

// MsgTaskLog carries output written to a span.
type MsgTaskLog struct {
	SpanID string
	Data   []byte
}

// MsgTaskComplete is sent when a span ends.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgRunFinished is sent once the whole run has returned.
type MsgRunFinished struct {
	Err error
}
