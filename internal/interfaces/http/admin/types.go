package admin

import (
	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type noticeResponse struct {
	Notice admindomain.Notice `json:"notice"`
}

type signInResponse struct {
	Notice  admindomain.Notice       `json:"notice"`
	Session admindomain.Session      `json:"session"`
	Profile admindomain.AdminProfile `json:"profile"`
}

type sessionResponse struct {
	Session admindomain.Session      `json:"session"`
	Profile admindomain.AdminProfile `json:"profile"`
}

// adminHeader is what the dashboard shows next to the sign-out button.
type adminHeader struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type submissionListResponse struct {
	Admin       adminHeader              `json:"admin"`
	Stats       admindomain.Stats        `json:"stats"`
	Submissions []admindomain.Submission `json:"submissions"`
}
