package wsproto

import (
	"context"
)

//go:generate go run github.com/marben/irpc/cmd/irpc

// RenderService renders images for remote clients. A Render call discards
// the render still running for the same session, whose call then fails.
type RenderService interface {
	Render(ctx context.Context, session uint64, req RenderRequest) (RenderReply, error)
}

// ProgressSink is served by every client. The server attaches it to a new
// session once the connection is accepted and reports render progress to it.
type ProgressSink interface {
	Attach(ctx context.Context, session uint64) error
	Progress(ctx context.Context, percent float64) error
}
