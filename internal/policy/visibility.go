// Package policy - единое определение того, кто видит жалобу и кто может её менять.
//
// Одна и та же функция Decide используется и для проверки отдельной жалобы, и (через Filter)
// для построения условия выборки ленты, поэтому "что видно в списке" и "что отдаётся по id" не расходятся.
package policy

import (
	"github.com/grievance-service/internal/domain"
)

// Reason - ветка правила, которая приняла решение
type Reason string

const (
	ReasonPublic           Reason = "public"
	ReasonAnonymousPrivate Reason = "anonymous_private"
	ReasonOwner            Reason = "owner"
	ReasonAreaLeader       Reason = "area_leader"
	ReasonVerifiedOfficial Reason = "verified_official"
	ReasonPassword         Reason = "password"
	ReasonDenied           Reason = "denied"
)

// Decision - результат проверки доступа
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

func allow(r Reason) Decision { return Decision{Allowed: true, Reason: r} }
func deny(r Reason) Decision  { return Decision{Allowed: false, Reason: r} }

// Decide применяет правила видимости по порядку; первая сработавшая ветка побеждает.
func Decide(g *domain.Grievance, v domain.Viewer) Decision {
	if g.Visibility == domain.VisibilityPublic {
		return allow(ReasonPublic)
	}
	if v.IsAnonymous() {
		return deny(ReasonAnonymousPrivate)
	}
	if g.IsOwnedBy(v.UserID) {
		return allow(ReasonOwner)
	}
	if g.IsLedBy(v.UserID) {
		return allow(ReasonAreaLeader)
	}
	if v.IsVerifiedOfficial() {
		return allow(ReasonVerifiedOfficial)
	}
	return deny(ReasonDenied)
}

// IsVisible - видна ли жалоба зрителю без пароля
func IsVisible(g *domain.Grievance, v domain.Viewer) bool {
	return Decide(g, v).Allowed
}

// Filter - форма правила видимости для выборок. Репозиторий переводит её в SQL,
// Matches вычисляет то же самое в памяти.
type Filter struct {
	viewer domain.Viewer
	all    bool
}

// FilterFor строит фильтр ленты для зрителя
func FilterFor(v domain.Viewer) Filter {
	return Filter{viewer: v}
}

// All - фильтр без ограничений для внутренних выборок, не привязанных к зрителю
func All() Filter {
	return Filter{all: true}
}

// Unrestricted - подтверждённый админ/политик видит всё
func (f Filter) Unrestricted() bool {
	return f.all || f.viewer.IsVerifiedOfficial()
}

// PublicOnly - анонимному зрителю доступны только публичные жалобы
func (f Filter) PublicOnly() bool {
	return !f.all && f.viewer.IsAnonymous()
}

// ViewerID - id для условий "владелец" и "руководитель района"
func (f Filter) ViewerID() int64 {
	return f.viewer.UserID
}

// Matches эквивалентен SQL-условию, которое строится из Unrestricted/PublicOnly/ViewerID
func (f Filter) Matches(g *domain.Grievance) bool {
	if f.all {
		return true
	}
	return Decide(g, f.viewer).Allowed
}
