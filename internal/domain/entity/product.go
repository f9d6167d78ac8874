package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o repuesto del inventario.
// Cost es el promedio ponderado calculado desde movimientos de entrada;
// Price es el precio de lista, usado como último recurso para costear salidas.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de lista
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	UnitMeasure string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
