package entity

// Roles válidos de la tienda.
const (
	RoleOwner   = "owner"
	RoleCashier = "kasir"
)

// Principal usuario autenticado (dueño o kasir); no se persiste, sale de la configuración.
type Principal struct {
	Username string
	Role     string
}
