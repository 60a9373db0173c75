package models

// JobPosting represents a live posting returned by the job-search provider,
// scored against the user's skill set
type JobPosting struct {
	Title          string              `json:"title"`
	Company        string              `json:"company"`
	Location       string              `json:"location"`
	Type           string              `json:"type"`
	Description    string              `json:"description"`
	Requirements   FlexibleStringSlice `json:"requirements"`
	Salary         string              `json:"salary,omitempty"`
	PostedDate     string              `json:"postedDate,omitempty"`
	ApplicationURL string              `json:"applicationUrl,omitempty"`
	SkillMatch     int                 `json:"skillMatch"` // 0-100
}

// JobPostingsResponse is the job-postings endpoint payload
type JobPostingsResponse struct {
	Jobs         []JobPosting `json:"jobs"`
	TotalResults int          `json:"totalResults"`
}
