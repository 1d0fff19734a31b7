package domain

type Role string

const (
	RoleCitizen    Role = "citizen"
	RolePolitician Role = "politician"
	RoleAdmin      Role = "admin"
)

// Viewer - тот, кто обращается к данным. Нулевое значение означает анонимного пользователя.
type Viewer struct {
	UserID        int64 `json:"user_id"`
	Authenticated bool  `json:"authenticated"`
	Role          Role  `json:"role"`
	Verified      bool  `json:"verified"`
}

// Anonymous возвращает неаутентифицированного зрителя
func Anonymous() Viewer {
	return Viewer{}
}

func (v Viewer) IsAnonymous() bool {
	return !v.Authenticated
}

// IsVerifiedOfficial - админ или политик с подтверждённым статусом
func (v Viewer) IsVerifiedOfficial() bool {
	if !v.Authenticated || !v.Verified {
		return false
	}
	return v.Role == RoleAdmin || v.Role == RolePolitician
}
