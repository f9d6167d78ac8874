package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un producto en una bodega.
// AverageCost es el costo promedio ponderado; solo se recalcula en entradas,
// las salidas lo dejan intacto. Quantity nunca puede quedar negativa.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	UpdatedAt   time.Time
}
