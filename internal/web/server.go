package web

import "context"

// Server is a background service with an explicit lifecycle.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

var _ Server = (*HTTPServer)(nil)
