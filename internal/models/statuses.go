package models

type UserRole string
type CompanyStatus string
type JobStatus string
type ApplicationStatus string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleCompany   UserRole = "company"
	UserRoleJobseeker UserRole = "jobseeker"

	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusApproved CompanyStatus = "approved"
	CompanyStatusRejected CompanyStatus = "rejected"

	JobStatusPending JobStatus = "pending"
	JobStatusActive  JobStatus = "active"
	JobStatusClosed  JobStatus = "closed"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusHired       ApplicationStatus = "hired"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCompany, UserRoleJobseeker:
		return true
	}
	return false
}

func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusPending, CompanyStatusApproved, CompanyStatusRejected:
		return true
	}
	return false
}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusActive, JobStatusClosed:
		return true
	}
	return false
}

// IsValid - фиксированный набор статусов заявки
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusInterview, ApplicationStatusHired, ApplicationStatusRejected,
		ApplicationStatusAccepted:
		return true
	}
	return false
}
