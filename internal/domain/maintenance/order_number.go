package maintenance

import "fmt"

// FormatOrderNumber arma el número legible de una orden: "OM-<año>-<seq>" con
// el consecutivo a 3 dígitos. La asignación del consecutivo es responsabilidad
// del contador por sucursal+año (atómico dentro de la transacción de creación);
// aquí solo se formatea.
func FormatOrderNumber(year, seq int) string {
	return fmt.Sprintf("OM-%d-%03d", year, seq)
}
