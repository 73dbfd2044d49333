package identity

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer issues access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *User) (string, error)
}
