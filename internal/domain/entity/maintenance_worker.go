package entity

// MaintenanceWorker asocia un empleado a una orden de mantenimiento.
type MaintenanceWorker struct {
	ID            string
	OrderID       string
	EmployeeID    string
	IsResponsible bool // responsable principal de la orden
}
