package domain

import "time"

// Submission is a casting-intake row as the dashboard reads it.
type Submission struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone"`
	Province    string    `json:"province"`
	ProfileType string    `json:"profile_type"`
	Motivation  string    `json:"motivation"`
	Photos      []string  `json:"photos"`
	CVPortfolio *string   `json:"cv_portfolio"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasCV reports whether a CV/portfolio was attached.
func (s Submission) HasCV() bool {
	return s.CVPortfolio != nil && *s.CVPortfolio != ""
}

// SubmissionDetail is a submission with its storage paths resolved to public URLs.
type SubmissionDetail struct {
	Submission
	PhotoURLs      []string `json:"photo_urls"`
	CVURL          *string  `json:"cv_url"`
	PlaceholderURL string   `json:"placeholder_url"`
}
