package model

import "time"

// ReconResult holds one run against one target. Each collector owns exactly
// one data field and one status field.
type ReconResult struct {
	RunID      string        `json:"run_id"`
	Target     Target        `json:"target"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	HTTPStatus int           `json:"http_status,omitempty"`

	Metadata   *PageMetadata `json:"metadata,omitempty"`
	Phones     []string      `json:"phones"`
	Subdomains []string      `json:"subdomains"`
	Folders    []string      `json:"folders"`

	MetadataStatus  CollectorStatus `json:"metadata_status"`
	PhoneStatus     CollectorStatus `json:"phone_status"`
	SubdomainStatus CollectorStatus `json:"subdomain_status"`
	FolderStatus    CollectorStatus `json:"folder_status"`
}

// Section pairs a collector name with its status, in report order.
type Section struct {
	Name   string
	Status CollectorStatus
}

// Sections returns the collector statuses in fixed report order.
func (r *ReconResult) Sections() []Section {
	return []Section{
		{Name: CollectorMetadata, Status: r.MetadataStatus},
		{Name: CollectorPhones, Status: r.PhoneStatus},
		{Name: CollectorSubdomains, Status: r.SubdomainStatus},
		{Name: CollectorFolders, Status: r.FolderStatus},
	}
}

// SkipAll marks every collector skipped with the same reason.
func (r *ReconResult) SkipAll(reason string) {
	r.MetadataStatus = Skipped(reason)
	r.PhoneStatus = Skipped(reason)
	r.SubdomainStatus = Skipped(reason)
	r.FolderStatus = Skipped(reason)
}
