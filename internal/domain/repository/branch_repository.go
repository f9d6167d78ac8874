package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// BranchRepository define el puerto de consulta de sucursales (colaborador externo).
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
}
