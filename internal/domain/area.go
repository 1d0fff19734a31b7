package domain

import "time"

// Area - административный район (행정동). Имя уникально; ровно один район зарезервирован как "не назначен".
type Area struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Center      Coordinate `json:"center"`
	HasBoundary bool       `json:"has_boundary" db:"has_boundary"`
	LeaderID    *int64     `json:"leader_id,omitempty" db:"leader_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
