package models

import "fmt"

// Role is the closed set of partner roles. The hierarchy is
// owner > admin > partner for permission purposes, but route guards
// check explicit role sets rather than comparing levels.
type Role string

const (
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
	RoleOwner   Role = "owner"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePartner, RoleAdmin, RoleOwner:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// OneOf reports whether r is in the required set.
func (r Role) OneOf(required ...Role) bool {
	for _, req := range required {
		if r == req {
			return true
		}
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

type HealthStatus string

const (
	HealthHealthy    HealthStatus = "healthy"
	HealthMonitoring HealthStatus = "monitoring"
	HealthSick       HealthStatus = "sick"
)

func ParseHealthStatus(s string) (HealthStatus, error) {
	switch HealthStatus(s) {
	case HealthHealthy, HealthMonitoring, HealthSick:
		return HealthStatus(s), nil
	}
	return "", fmt.Errorf("unknown health status %q", s)
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionIncome, TransactionExpense:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}
