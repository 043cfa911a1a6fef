package ports

// PasswordHasher hashea y verifica contraseñas. Unidireccional, sin estado.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer firma un bearer token ligado al id de la cuenta.
// La verificación en peticiones posteriores la hace el middleware HTTP.
type TokenIssuer interface {
	Sign(accountID, role string) (string, error)
}
