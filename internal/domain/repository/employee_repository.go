package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// EmployeeRepository define el puerto de consulta de empleados (colaborador externo).
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
}
