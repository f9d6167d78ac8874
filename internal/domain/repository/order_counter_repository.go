package repository

// OrderCounterRepository asigna consecutivos de órdenes por sucursal y año.
// El incremento debe ser atómico dentro de la transacción que crea la orden,
// para que dos creaciones concurrentes nunca reciban el mismo número.
type OrderCounterRepository interface {
	NextSequence(companyID, branchID string, year int) (int, error)
}
