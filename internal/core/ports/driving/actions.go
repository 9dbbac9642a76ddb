package driving

import (
	"context"
)

// ResultActionService provides actions on selected documents for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ResultActionService interface {
	// OpenURL opens a document URL in the default application.
	OpenURL(ctx context.Context, rawURL string) error

	// CopyURL copies a document URL to the system clipboard.
	CopyURL(ctx context.Context, rawURL string) error
}
