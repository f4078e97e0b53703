package telemetry

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Sender delivers messages to a running Bubble Tea program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIBridge implements sdktrace.SpanProcessor to bridge OTel spans to Bubble Tea messages.
type TUIBridge struct {
	program Sender
}

// NewTUIBridge returns a new TUIBridge.
func NewTUIBridge(program Sender) *TUIBridge {
	return &TUIBridge{
		program: program,
	}
}

// OnStart is called when a span starts.
func (b *TUIBridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.program == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if parentSpan := trace.SpanFromContext(parent); parentSpan.SpanContext().IsValid() {
		parentID = parentSpan.SpanContext().SpanID().String()
	}

	b.program.Send(MsgTaskStart{
		SpanID:    sc.SpanID().String(),
		ParentID:  parentID,
		Name:      s.Name(),
		StartTime: s.StartTime(),
	})
}

// OnEnd is called when a span ends.
func (b *TUIBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.program == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
	}

	b.program.Send(MsgTaskComplete{
		SpanID:  sc.SpanID().String(),
		EndTime: s.EndTime(),
		Err:     err,
	})
}

// Log forwards span output to the program. It has the LogSink signature.
func (b *TUIBridge) Log(spanID string, data []byte) {
	if b.program == nil {
		return
	}
	b.program.Send(MsgTaskLog{SpanID: spanID, Data: data})
}

// ForceFlush does nothing.
func (b *TUIBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *TUIBridge) Shutdown(_ context.Context) error {
	return nil
}
