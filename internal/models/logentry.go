package models

// LogEntry is one persisted row from the database log table.
type LogEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Logger    string `json:"logger"`
	Module    string `json:"module"`
	Line      int    `json:"line"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

// LogFilter narrows a log listing query.
type LogFilter struct {
	Level     string
	Component string
	Search    string
	Page      PageQuery
}

// LogStats summarizes the contents of the log table.
type LogStats struct {
	ByLevel         map[string]int64 `json:"by_level"`
	Total           int64            `json:"total"`
	LatestTimestamp string           `json:"latest_timestamp,omitempty"`
}
