package auth

// Claims representa la identidad extraída del token de sesión.
// FullName/AvatarURL vienen de los metadatos del proveedor y solo se usan
// para sembrar el perfil en el primer login.
type Claims struct {
	UserID    string
	Email     string
	FullName  string
	AvatarURL string
}
