// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// UserAccount is the single persisted entity of the system: one row in the
// "utilisateurs" table. PasswordHash is the bcrypt digest of the account
// password and must never leave the application layer.
type UserAccount struct {
	ID           int64  // Assigned by the store on creation, immutable afterwards.
	Login        string // Unique across all accounts.
	PasswordHash string // Opaque, algorithm-tagged hash. Never the raw password.
	Email        string
	FirstName    string
	LastName     string
}

// SessionIdentity is the authenticated-identity snapshot handed to the web
// layer after a successful register or login. It is the public projection of
// a UserAccount: same fields minus the password hash. The caller owns it
// (stores it in whatever session mechanism it uses) and re-supplies it on
// every subsequent request.
type SessionIdentity struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// NewSessionIdentity projects a UserAccount into its public identity snapshot.
func NewSessionIdentity(user *UserAccount) *SessionIdentity {
	if user == nil {
		return nil
	}

	return &SessionIdentity{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
