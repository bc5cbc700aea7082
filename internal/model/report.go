package model

import "time"

// NotFoundValue is displayed for environment variables that are not set.
const NotFoundValue = "Not found"

// RuntimeInfo describes the running binary.
type RuntimeInfo struct {
	ToolVersion string    `json:"tool_version"`
	GoVersion   string    `json:"go_version"`
	Executable  string    `json:"executable"`
	WorkingDir  string    `json:"working_dir"`
	CurrentTime time.Time `json:"current_time"`
}

// FormattedTime returns CurrentTime in TimeLayout.
func (r *RuntimeInfo) FormattedTime() string {
	return r.CurrentTime.Format(TimeLayout)
}

// TimeLayout is the display layout for timestamps, e.g. 2026-10-19 08:30:00.
const TimeLayout = "2006-01-02 15:04:05"

// EnvVar is one displayed environment variable.
// Value already has truncation applied; Set is false when the variable
// was absent and Value holds NotFoundValue.
type EnvVar struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Set       bool   `json:"set"`
	Truncated bool   `json:"truncated"`
}

// PlatformInfo describes the host platform.
type PlatformInfo struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	Hostname string `json:"hostname"`
	NumCPU   int    `json:"num_cpu"`
}

// Report is the complete result of one envcheck run.
type Report struct {
	RunID       string        `json:"run_id"`
	Version     string        `json:"version,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
	Runtime     *RuntimeInfo  `json:"runtime"`
	Environment []*EnvVar     `json:"environment"`
	Platform    *PlatformInfo `json:"platform"`
	Libraries   *ScanResult   `json:"libraries"`
}
