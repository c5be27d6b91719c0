package model

import "time"

type State string

const (
	StateSuccess State = "success"
	StateSkipped State = "skipped"
	StateFailed  State = "failed"
)

// Collector names, also used as metric labels.
const (
	CollectorMetadata   = "metadata"
	CollectorPhones     = "phones"
	CollectorSubdomains = "subdomains"
	CollectorFolders    = "folders"
)

type CollectorStatus struct {
	State    State         `json:"state"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

func Success(d time.Duration) CollectorStatus {
	return CollectorStatus{State: StateSuccess, Duration: d}
}

func Skipped(reason string) CollectorStatus {
	return CollectorStatus{State: StateSkipped, Reason: reason}
}

func Failed(reason string, d time.Duration) CollectorStatus {
	return CollectorStatus{State: StateFailed, Reason: reason, Duration: d}
}

// String renders the status the way report sections show it.
func (s CollectorStatus) String() string {
	if s.Reason == "" {
		return string(s.State)
	}
	return string(s.State) + ": " + s.Reason
}
