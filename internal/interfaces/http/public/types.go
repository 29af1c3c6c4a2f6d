package public

import (
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

type submissionResponse struct {
	Notice     domain.Notice       `json:"notice"`
	Submission *domain.Submission  `json:"submission,omitempty"`
	Form       domain.IntakeForm   `json:"form"`
	Error      *common.ErrorDetail `json:"error,omitempty"`
}

type formOptionsResponse struct {
	Genders           []string `json:"genders"`
	Provinces         []string `json:"provinces"`
	ProfileTypes      []string `json:"profile_types"`
	MinPhotos         int      `json:"min_photos"`
	MaxPhotos         int      `json:"max_photos"`
	MinAge            int      `json:"min_age"`
	MaxAge            int      `json:"max_age"`
	MinMotivation     int      `json:"min_motivation"`
	MaxMotivation     int      `json:"max_motivation"`
	MaxFileBytes      int      `json:"max_file_bytes"`
	AcceptedCVFormats []string `json:"accepted_cv_formats"`
}

func newFormOptions() formOptionsResponse {
	return formOptionsResponse{
		Genders:           domain.Genders,
		Provinces:         domain.Provinces,
		ProfileTypes:      domain.ProfileTypes,
		MinPhotos:         domain.MinPhotos,
		MaxPhotos:         domain.MaxPhotos,
		MinAge:            domain.MinAge,
		MaxAge:            domain.MaxAge,
		MinMotivation:     domain.MinMotivationRunes,
		MaxMotivation:     domain.MaxMotivationRunes,
		MaxFileBytes:      common.MaxFileBytes,
		AcceptedCVFormats: []string{".pdf", ".doc", ".docx"},
	}
}
