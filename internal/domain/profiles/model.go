package profiles

import "time"

// Role queda registrado pero no funciona como gate de autorización:
// el ownership se chequea por identidad en cada módulo.
// @Enum user, publisher, admin
type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// Profile extiende la identidad del proveedor de sesión.
// El ID es el mismo user id que emite el proveedor.
type Profile struct {
	ID        string
	FullName  string
	AvatarURL string
	Role      Role
	Phone     string
	Address   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
