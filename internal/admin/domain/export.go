package domain

import (
	"regexp"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SubmissionPDFName is the download name of a single-record export.
func SubmissionPDFName(fullName string) string {
	return "casting-" + strings.ToLower(whitespaceRun.ReplaceAllString(fullName, "-")) + ".pdf"
}

// ReportPDFName is the download name of the full report generated at the given instant.
func ReportPDFName(at time.Time) string {
	return "casting-caly-ii-relatorio-completo-" + at.Format("02-01-2006") + ".pdf"
}

// DisplayTime renders an instant as "dd/MM/yyyy às HH:mm".
func DisplayTime(t time.Time) string {
	return t.Format("02/01/2006") + " às " + t.Format("15:04")
}

// DisplayDate renders an instant as "dd/MM/yyyy".
func DisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}
