package maintenance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
)

// Precisión fija para evitar deriva de punto flotante en multiplicaciones repetidas.
const (
	moneyPlaces    = 2 // moneda
	quantityPlaces = 3 // cantidades de material
)

// RoundMoney redondea un monto a precisión de moneda (2 decimales).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// RoundQuantity redondea una cantidad de material (3 decimales).
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(quantityPlaces)
}

// MaterialTotal calcula el costo total de un material: cantidad y costo unitario
// se redondean a su precisión fija antes de multiplicar.
func MaterialTotal(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return RoundMoney(RoundQuantity(quantity).Mul(RoundMoney(unitCost)))
}

// ElapsedMinutes recorre la línea de tiempo de la orden (ordenada por fecha de
// creación) y acumula los minutos de trabajo efectivo: suma los intervalos entre
// STARTED/RESUMED y el siguiente PAUSED/COMPLETED/CANCELLED. Si al final queda
// una sesión abierta y no pausada, suma el intervalo hasta now, de modo que una
// orden en curso reporta un valor vivo que crece con el tiempo. Cada delta se
// trunca a minutos enteros.
func ElapsedMinutes(events []*entity.MaintenanceTimeline, now time.Time) int64 {
	var minutes int64
	var sessionStart time.Time
	open := false
	paused := false

	flush := func(until time.Time) {
		minutes += int64(until.Sub(sessionStart).Minutes())
	}

	for _, ev := range events {
		switch ev.Event {
		case entity.TimelineEventStarted, entity.TimelineEventResumed:
			// Defensivo: un doble inicio cierra la sesión anterior antes de abrir otra
			if open && !paused {
				flush(ev.CreatedAt)
			}
			sessionStart = ev.CreatedAt
			open = true
			paused = false
		case entity.TimelineEventPaused:
			if open && !paused {
				flush(ev.CreatedAt)
			}
			paused = true
		case entity.TimelineEventCompleted, entity.TimelineEventCancelled:
			if open && !paused {
				flush(ev.CreatedAt)
			}
			open = false
			paused = false
		}
	}
	if open && !paused {
		flush(now)
	}
	return minutes
}

// OrderCost es el costo total de una orden con su origen explícito:
// Frozen indica que el valor fue congelado al completar la orden y es
// autoritativo; si no, Amount es una estimación viva.
type OrderCost struct {
	Amount decimal.Decimal
	Frozen bool
}

// TotalCost devuelve el costo de la orden. Si la orden ya tiene un costo
// congelado mayor a cero, ese valor gana. Si no, estima: suma de servicios más,
// por cada material, cantidad por precio de lista del producto (los materiales
// previos al cierre pueden no estar costeados contra el stock todavía).
func TotalCost(
	order *entity.MaintenanceOrder,
	services []*entity.MaintenanceService,
	materials []*entity.MaintenanceMaterial,
	productsByID map[string]*entity.Product,
) OrderCost {
	if order.TotalCost.GreaterThan(decimal.Zero) {
		return OrderCost{Amount: order.TotalCost, Frozen: true}
	}
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Cost)
	}
	for _, m := range materials {
		p := productsByID[m.ProductID]
		if p == nil {
			continue
		}
		total = total.Add(m.Quantity.Mul(p.Price))
	}
	return OrderCost{Amount: RoundMoney(total), Frozen: false}
}
