package domain

import "time"

// QuerySource identifies where a recorded query was submitted.
type QuerySource string

// Known query sources.
const (
	QuerySourceWidget QuerySource = "widget"
	QuerySourcePage   QuerySource = "page"
	QuerySourceCLI    QuerySource = "cli"
	QuerySourceMCP    QuerySource = "mcp"
)

// QueryRecord is one entry of the local query history.
type QueryRecord struct {
	ID          string
	Query       string
	Source      QuerySource
	ResultCount int
	CreatedAt   time.Time
}
