package entity

import "time"

// Category agrupa medicamentos (antibióticos, analgésicos, etc.).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Supplier es un proveedor de medicamentos.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Address   string
	CreatedAt time.Time
}

// Customer es un cliente de la farmacia.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User es un usuario del sistema (el "opaque user id" que firma ventas,
// pagos y ajustes de stock).
type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Role         string // admin | cashier
	CreatedAt    time.Time
}
