package domain

// Role is the coarse-grained permission level carried by an Identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the public view of an authenticated principal. It has no field
// able to hold a password or hash, so it is safe to embed in tokens and
// responses.
type Identity struct {
	ID   int64  `json:"user_id"`
	Name string `json:"user_name"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the identity bypasses ownership checks.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Credential is the private authentication material for an identity.
// It never leaves the service layer.
type Credential struct {
	Identity     Identity
	Email        string
	PasswordHash string
}

// User is the profile returned by user listing endpoints.
type User struct {
	Identity
	Email string `json:"email"`
}

// UserPatch carries the optional fields of a user update. Nil means
// "leave unchanged". Password is plaintext and is hashed by the service.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.Role == nil
}

// CredentialPatch is the persisted form of a UserPatch, with the password
// already hashed.
type CredentialPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
}
