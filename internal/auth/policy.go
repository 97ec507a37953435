package auth

import (
	"jobboard_backend/internal/models"
	"jobboard_backend/pkg/apperrors"
)

type Entity string
type Operation string

const (
	EntityApplication Entity = "application"
	EntityJob         Entity = "job"
	EntityUser        Entity = "user"
	EntityCompany     Entity = "company"

	OpRead     Operation = "read"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpModerate Operation = "moderate"
)

// Caller - идентичность вызывающего, как ее вернул провайдер сессий
type Caller struct {
	ID    string
	Role  models.UserRole
	Email string
	Name  string
}

func (c *Caller) Authenticated() bool {
	return c != nil && c.ID != "" && c.Role != ""
}

// Subject - факты о целевой записи, нужные политикам
type Subject struct {
	// OwnerUserID - userId заявки или компании
	OwnerUserID string
	// CompanyID - компания, которой принадлежит вакансия (для заявки - вакансия заявки)
	CompanyID string
	// CallerCompany - профиль компании вызывающего (только для роли company)
	CallerCompany *models.Company
	// TargetRole - роль пользователя-цели
	TargetRole models.UserRole
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Policy - чистое решение без побочных эффектов
type Policy func(caller *Caller, s Subject) Decision

type policyKey struct {
	role   models.UserRole
	entity Entity
	op     Operation
}

func always(*Caller, Subject) Decision { return allow() }

func ownRecord(caller *Caller, s Subject) Decision {
	if s.OwnerUserID != "" && s.OwnerUserID == caller.ID {
		return allow()
	}
	return deny("You do not have permission to access this record")
}

func approvedCompany(_ *Caller, s Subject) Decision {
	if !s.CallerCompany.IsApproved() {
		return deny("Your company profile has not been approved")
	}
	return allow()
}

func approvedCompanyOwningJob(caller *Caller, s Subject) Decision {
	if d := approvedCompany(caller, s); !d.Allowed {
		return d
	}
	if s.CompanyID == "" || s.CompanyID != s.CallerCompany.ID {
		return deny("This job does not belong to your company")
	}
	return allow()
}

func nonAdminTarget(_ *Caller, s Subject) Decision {
	if s.TargetRole == models.UserRoleAdmin {
		return deny("Admin accounts cannot be modified or deleted")
	}
	return allow()
}

var policies = map[policyKey]Policy{
	// Application
	{models.UserRoleJobseeker, EntityApplication, OpRead}:   ownRecord,
	{models.UserRoleJobseeker, EntityApplication, OpUpdate}: ownRecord,
	{models.UserRoleJobseeker, EntityApplication, OpCreate}: always,
	{models.UserRoleCompany, EntityApplication, OpRead}:     approvedCompanyOwningJob,
	{models.UserRoleCompany, EntityApplication, OpUpdate}:   approvedCompanyOwningJob,
	{models.UserRoleAdmin, EntityApplication, OpRead}:       always,
	{models.UserRoleAdmin, EntityApplication, OpUpdate}:     always,

	// Job
	{models.UserRoleCompany, EntityJob, OpCreate}: approvedCompany,
	{models.UserRoleCompany, EntityJob, OpUpdate}: approvedCompanyOwningJob,
	{models.UserRoleCompany, EntityJob, OpDelete}: approvedCompanyOwningJob,
	{models.UserRoleAdmin, EntityJob, OpUpdate}:   always,
	{models.UserRoleAdmin, EntityJob, OpDelete}:   always,
	{models.UserRoleAdmin, EntityJob, OpModerate}: always,

	// User
	{models.UserRoleAdmin, EntityUser, OpRead}:   always,
	{models.UserRoleAdmin, EntityUser, OpUpdate}: nonAdminTarget,
	{models.UserRoleAdmin, EntityUser, OpDelete}: nonAdminTarget,

	// Company
	{models.UserRoleCompany, EntityCompany, OpCreate}: always,
	{models.UserRoleCompany, EntityCompany, OpRead}:   ownRecord,
	{models.UserRoleCompany, EntityCompany, OpUpdate}: ownRecord,
	{models.UserRoleAdmin, EntityCompany, OpRead}:     always,
	{models.UserRoleAdmin, EntityCompany, OpUpdate}:   always,
	{models.UserRoleAdmin, EntityCompany, OpModerate}: always,
}

// Decide находит политику по (роль, сущность, операция); нет политики - отказ
func Decide(caller *Caller, entity Entity, op Operation, s Subject) Decision {
	policy, ok := policies[policyKey{caller.Role, entity, op}]
	if !ok {
		return deny("Insufficient permissions")
	}
	return policy(caller, s)
}

// Authorize переводит отказ в AppError: 401 без идентичности, 403 без прав
func Authorize(caller *Caller, entity Entity, op Operation, s Subject) error {
	if !caller.Authenticated() {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}
	if d := Decide(caller, entity, op, s); !d.Allowed {
		return apperrors.NewForbiddenError(d.Reason)
	}
	return nil
}
