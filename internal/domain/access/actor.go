// Package access reúne las reglas de autorización por registro: visibilidad
// acotada a la empresa del usuario autenticado y jerarquía de roles.
package access

import "github.com/foxred/hillary/internal/domain/entity"

// Actor usuario autenticado que ejecuta una operación, tal como lo describe su token.
type Actor struct {
	UserID    int64
	CompanyID int64
	RoleID    int64
}

// IsManager informa si el actor es Gerente.
func (a Actor) IsManager() bool {
	return a.RoleID == entity.RoleManager
}

// HasCompany informa si el token trae empresa.
func (a Actor) HasCompany() bool {
	return a.CompanyID != 0
}

// SameCompany informa si el registro de companyID es visible para el actor.
func (a Actor) SameCompany(companyID int64) bool {
	return a.HasCompany() && a.CompanyID == companyID
}

// CanAssignRole: un Usuario no puede dar de alta Gerentes.
func (a Actor) CanAssignRole(roleID int64) bool {
	return a.IsManager() || roleID != entity.RoleManager
}

// CanEditUser: misma empresa y, si no es Gerente, solo su propio perfil.
func (a Actor) CanEditUser(target *entity.User) bool {
	if target == nil || !a.SameCompany(target.CompanyID) {
		return false
	}
	return a.IsManager() || a.UserID == target.ID
}
