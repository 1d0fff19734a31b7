package domain

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// IsTerminal - после перехода в resolved проставляется completed_at
func (s Status) IsTerminal() bool {
	return s == StatusResolved
}

type Category string

const (
	CategoryTraffic  Category = "traffic"
	CategoryEnv      Category = "env"
	CategorySafety   Category = "safety"
	CategoryFacility Category = "facility"
	CategoryAnimal   Category = "animal"
	CategoryAdmin    Category = "admin"
	CategoryEtc      Category = "etc"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTraffic, CategoryEnv, CategorySafety, CategoryFacility, CategoryAnimal, CategoryAdmin, CategoryEtc:
		return true
	}
	return false
}

// Grievance - жалоба (민원) с геометкой.
// AreaLeaderID денормализуется из areas при чтении: он нужен политике видимости.
type Grievance struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       *int64     `json:"user_id,omitempty" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	Category     Category   `json:"category" db:"category"`
	Status       Status     `json:"status" db:"status"`
	Visibility   Visibility `json:"visibility" db:"visibility"`
	AreaID       *int64     `json:"area_id,omitempty" db:"area_id"`
	AreaName     *string    `json:"area_name,omitempty" db:"area_name"`
	AreaLeaderID *int64     `json:"-" db:"area_leader_id"`
	Location     string     `json:"location" db:"location"`
	Coordinate   Coordinate `json:"coordinate"`
	HasSecret    bool       `json:"has_password" db:"has_secret"`
	LikeCount    int        `json:"like_count" db:"like_count"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

func (g *Grievance) IsPrivate() bool {
	return g.Visibility == VisibilityPrivate
}

// IsOwnedBy - анонимная жалоба не принадлежит никому
func (g *Grievance) IsOwnedBy(userID int64) bool {
	return g.UserID != nil && *g.UserID == userID
}

func (g *Grievance) IsLedBy(userID int64) bool {
	return g.AreaLeaderID != nil && *g.AreaLeaderID == userID
}

// NearbyGrievance - жалоба с расстоянием до центра поиска в метрах
type NearbyGrievance struct {
	Grievance
	DistanceMeters float64 `json:"distance_m" db:"distance"`
}

// Secret - солёный хеш пароля приватной жалобы. Открытый текст никогда не хранится.
type Secret struct {
	GrievanceID  uuid.UUID `json:"-" db:"grievance_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

// GrievanceOrdering - сортировка ленты: имя поля, "-" впереди означает по убыванию
type GrievanceOrdering string

const (
	OrderByCreatedAsc    GrievanceOrdering = "created_at"
	OrderByCreatedDesc   GrievanceOrdering = "-created_at"
	OrderByUpdatedAsc    GrievanceOrdering = "updated_at"
	OrderByUpdatedDesc   GrievanceOrdering = "-updated_at"
	OrderByLikeCountAsc  GrievanceOrdering = "like_count"
	OrderByLikeCountDesc GrievanceOrdering = "-like_count"
)

// DefaultFeedOrdering - от новых к старым
const DefaultFeedOrdering = OrderByCreatedDesc

func (o GrievanceOrdering) Valid() bool {
	switch o {
	case OrderByCreatedAsc, OrderByCreatedDesc,
		OrderByUpdatedAsc, OrderByUpdatedDesc,
		OrderByLikeCountAsc, OrderByLikeCountDesc:
		return true
	}
	return false
}

// GrievanceListFilter - дополнительные фильтры ленты поверх политики видимости.
// Search ищет подстроку без учёта регистра в title, content и location; Location - точное совпадение.
// Пустой Ordering означает DefaultFeedOrdering.
type GrievanceListFilter struct {
	Status   *Status
	Category *Category
	AreaID   *int64
	OwnerID  *int64
	Location *string
	Search   *string
	Ordering GrievanceOrdering
	Limit    int
	Offset   int
}
