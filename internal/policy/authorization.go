package policy

import (
	"time"

	"github.com/grievance-service/internal/domain"
)

// AuthorizeStatusChange - менять статус могут только руководитель района жалобы
// или подтверждённый админ/политик. Владелец жалобы такого права не имеет.
func AuthorizeStatusChange(g *domain.Grievance, v domain.Viewer) Decision {
	if v.IsAnonymous() {
		return deny(ReasonAnonymousPrivate)
	}
	if g.IsLedBy(v.UserID) {
		return allow(ReasonAreaLeader)
	}
	if v.IsVerifiedOfficial() {
		return allow(ReasonVerifiedOfficial)
	}
	return deny(ReasonDenied)
}

// CanModify - редактировать и удалять жалобу может только её автор; анонимные жалобы неизменяемы
func CanModify(g *domain.Grievance, v domain.Viewer) Decision {
	if v.IsAnonymous() || g.UserID == nil {
		return deny(ReasonDenied)
	}
	if g.IsOwnedBy(v.UserID) {
		return allow(ReasonOwner)
	}
	return deny(ReasonDenied)
}

// CompletionTime определяет completed_at при смене статуса prev -> next.
// Нетерминальный статус сбрасывает время. Переход в resolved берёт явно переданное время, иначе now;
// повторный resolved без явного времени сохраняет уже записанное значение.
func CompletionTime(prev, next domain.Status, requested, current *time.Time, now time.Time) *time.Time {
	if !next.IsTerminal() {
		return nil
	}
	if requested != nil {
		t := *requested
		return &t
	}
	if prev.IsTerminal() && current != nil {
		return current
	}
	return &now
}
