package domain

import "time"

// Submission is one applicant's casting-intake record as written by the intake workflow.
type Submission struct {
	ID          string      `json:"id"`
	FullName    string      `json:"full_name"`
	Age         int         `json:"age"`
	Gender      Gender      `json:"gender"`
	Phone       string      `json:"phone"`
	Province    Province    `json:"province"`
	ProfileType ProfileType `json:"profile_type"`
	Motivation  string      `json:"motivation"`
	Photos      []string    `json:"photos"`
	CVPortfolio *string     `json:"cv_portfolio"`
	CreatedAt   time.Time   `json:"created_at"`
}

// UploadFile is one file picked in the form, already read into memory.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}
