package postgres

import (
	"fmt"
	"strings"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/policy"
)

// Константы для лимитов запросов
const (
	// DefaultQueryLimit - лимит по умолчанию для запросов
	DefaultQueryLimit = 20
	// MaxQueryLimit - максимальный лимит для запросов
	MaxQueryLimit = 100
)

// grievanceColumns - общая проекция жалобы вместе с районом, наличием Secret и числом лайков
const grievanceColumns = `
	g.id, g.user_id, g.title, g.content, g.category, g.status, g.visibility,
	g.area_id, a.name AS area_name, a.leader_id AS area_leader_id,
	g.location,
	ST_Y(g.point::geometry) AS lat, ST_X(g.point::geometry) AS lng,
	(s.grievance_id IS NOT NULL) AS has_secret,
	(SELECT COUNT(*) FROM grievance_likes l WHERE l.grievance_id = g.id) AS like_count,
	g.created_at, g.updated_at, g.completed_at`

const grievanceJoins = `
	FROM grievances g
	LEFT JOIN areas a ON a.id = g.area_id
	LEFT JOIN grievance_secrets s ON s.grievance_id = g.id`

// whereBuilder собирает условия WHERE с позиционными параметрами $n
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// newWhereBuilder - args уже занятые запросом параметры (например, координаты)
func newWhereBuilder(args ...interface{}) *whereBuilder {
	return &whereBuilder{args: args}
}

// arg добавляет параметр и возвращает его плейсхолдер
func (w *whereBuilder) arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(cond string) {
	w.conds = append(w.conds, cond)
}

// visibility переводит policy.Filter в SQL. Условие обязано совпадать с policy.Decide:
// публичная жалоба видна всем, приватная - автору, руководителю района и подтверждённому официальному лицу.
func (w *whereBuilder) visibility(f policy.Filter) {
	switch {
	case f.Unrestricted():
		return
	case f.PublicOnly():
		w.add(fmt.Sprintf("g.visibility = '%s'", domain.VisibilityPublic))
	default:
		id := w.arg(f.ViewerID())
		w.add(fmt.Sprintf("(g.visibility = '%s' OR g.user_id = %s OR a.leader_id = %s)",
			domain.VisibilityPublic, id, id))
	}
}

// listFilter добавляет необязательные фильтры ленты
func (w *whereBuilder) listFilter(f domain.GrievanceListFilter) {
	if f.Status != nil {
		w.add("g.status = " + w.arg(string(*f.Status)))
	}
	if f.Category != nil {
		w.add("g.category = " + w.arg(string(*f.Category)))
	}
	if f.AreaID != nil {
		w.add("g.area_id = " + w.arg(*f.AreaID))
	}
	if f.OwnerID != nil {
		w.add("g.user_id = " + w.arg(*f.OwnerID))
	}
	if f.Location != nil {
		w.add("g.location = " + w.arg(*f.Location))
	}
	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		p := w.arg("%" + escapeLike(strings.TrimSpace(*f.Search)) + "%")
		w.add(fmt.Sprintf("(g.title ILIKE %s OR g.content ILIKE %s OR g.location ILIKE %s)", p, p, p))
	}
}

// likeEscaper экранирует метасимволы LIKE; '\' - escape-символ ILIKE по умолчанию
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// feedOrderings - единственные выражения, которые попадают в ORDER BY ленты.
// g.id замыкает каждое, чтобы страницы не пересекались при равных значениях.
var feedOrderings = map[domain.GrievanceOrdering]string{
	domain.OrderByCreatedAsc:    "g.created_at ASC, g.id ASC",
	domain.OrderByCreatedDesc:   "g.created_at DESC, g.id DESC",
	domain.OrderByUpdatedAsc:    "g.updated_at ASC, g.id ASC",
	domain.OrderByUpdatedDesc:   "g.updated_at DESC, g.id DESC",
	domain.OrderByLikeCountAsc:  "like_count ASC, g.id ASC",
	domain.OrderByLikeCountDesc: "like_count DESC, g.id DESC",
}

// orderBy возвращает ORDER BY для ленты; неизвестное значение заменяется порядком по умолчанию
func orderBy(o domain.GrievanceOrdering) string {
	if clause, ok := feedOrderings[o]; ok {
		return " ORDER BY " + clause
	}
	return " ORDER BY " + feedOrderings[domain.DefaultFeedOrdering]
}

// sql возвращает " WHERE ..." или пустую строку
func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// normalizeLimit ограничивает размер страницы
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}
