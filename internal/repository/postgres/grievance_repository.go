package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/policy"
)

type grievanceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewGrievanceRepository создает новый экземпляр GrievanceRepository
func NewGrievanceRepository(db *DB) repository.GrievanceRepository {
	return &grievanceRepository{
		db:     db,
		logger: db.logger,
	}
}

type grievanceRow struct {
	ID           uuid.UUID  `db:"id"`
	UserID       *int64     `db:"user_id"`
	Title        string     `db:"title"`
	Content      string     `db:"content"`
	Category     string     `db:"category"`
	Status       string     `db:"status"`
	Visibility   string     `db:"visibility"`
	AreaID       *int64     `db:"area_id"`
	AreaName     *string    `db:"area_name"`
	AreaLeaderID *int64     `db:"area_leader_id"`
	Location     string     `db:"location"`
	Lat          float64    `db:"lat"`
	Lng          float64    `db:"lng"`
	HasSecret    bool       `db:"has_secret"`
	LikeCount    int        `db:"like_count"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	CompletedAt  *time.Time `db:"completed_at"`
}

func (r grievanceRow) toDomain() *domain.Grievance {
	return &domain.Grievance{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Content:      r.Content,
		Category:     domain.Category(r.Category),
		Status:       domain.Status(r.Status),
		Visibility:   domain.Visibility(r.Visibility),
		AreaID:       r.AreaID,
		AreaName:     r.AreaName,
		AreaLeaderID: r.AreaLeaderID,
		Location:     r.Location,
		Coordinate:   domain.Coordinate{Lat: r.Lat, Lon: r.Lng},
		HasSecret:    r.HasSecret,
		LikeCount:    r.LikeCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CompletedAt:  r.CompletedAt,
	}
}

type nearbyRow struct {
	grievanceRow
	Distance float64 `db:"distance"`
}

// Create сохраняет жалобу и Secret одной транзакцией
func (r *grievanceRepository) Create(ctx context.Context, g *domain.Grievance, secret *domain.Secret) error {
	insertGrievance := `
		INSERT INTO grievances (
			id, user_id, title, content, category, status, visibility,
			area_id, location, point, created_at, updated_at, completed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, ST_SetSRID(ST_MakePoint($10, $11), 4326)::geography, $12, $13, $14
		)
	`
	insertSecret := `
		INSERT INTO grievance_secrets (grievance_id, password_hash, created_at)
		VALUES ($1, $2, $3)
	`

	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertGrievance,
			g.ID, g.UserID, g.Title, g.Content, string(g.Category), string(g.Status), string(g.Visibility),
			g.AreaID, g.Location, g.Coordinate.Lon, g.Coordinate.Lat, g.CreatedAt, g.UpdatedAt, g.CompletedAt,
		); err != nil {
			return fmt.Errorf("insert grievance: %w", err)
		}

		if secret == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, insertSecret, g.ID, secret.PasswordHash, secret.CreatedAt); err != nil {
			return fmt.Errorf("insert secret: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to create grievance", zap.String("id", g.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	g.HasSecret = secret != nil
	return nil
}

// GetByID возвращает жалобу по ID
func (r *grievanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	query := `SELECT ` + grievanceColumns + grievanceJoins + ` WHERE g.id = $1`

	var row grievanceRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrGrievanceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get grievance by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

// GetSecret возвращает Secret жалобы или nil
func (r *grievanceRepository) GetSecret(ctx context.Context, id uuid.UUID) (*domain.Secret, error) {
	var secret domain.Secret
	err := r.db.GetContext(ctx, &secret,
		`SELECT grievance_id, password_hash, created_at FROM grievance_secrets WHERE grievance_id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get grievance secret", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &secret, nil
}

// List возвращает страницу ленты в порядке filter.Ordering и общее количество
func (r *grievanceRepository) List(
	ctx context.Context,
	visibility policy.Filter,
	filter domain.GrievanceListFilter,
) ([]*domain.Grievance, int, error) {
	w := newWhereBuilder()
	w.visibility(visibility)
	w.listFilter(filter)
	where := w.sql()

	var total int
	countQuery := `SELECT COUNT(*)` + grievanceJoins + where
	if err := r.db.GetContext(ctx, &total, countQuery, w.args...); err != nil {
		r.logger.Error("Failed to count grievances", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	limit := normalizeLimit(filter.Limit)
	query := `SELECT ` + grievanceColumns + grievanceJoins + where +
		orderBy(filter.Ordering) +
		fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(limit), w.arg(filter.Offset))

	var rows []grievanceRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		r.logger.Error("Failed to list grievances", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	result := make([]*domain.Grievance, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, total, nil
}

// Nearby лениво отдаёт жалобы в радиусе от точки, от ближних к дальним.
// Строки читаются по мере потребления; прерывание итерации закрывает курсор.
func (r *grievanceRepository) Nearby(
	ctx context.Context,
	center domain.Coordinate,
	radiusMeters float64,
	visibility policy.Filter,
) iter.Seq2[*domain.NearbyGrievance, error] {
	return func(yield func(*domain.NearbyGrievance, error) bool) {
		w := newWhereBuilder(center.Lon, center.Lat, radiusMeters)
		w.add("ST_DWithin(g.point, point.geom, $3)")
		w.visibility(visibility)

		query := `
			WITH point AS (
				SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
			)
			SELECT ` + grievanceColumns + `,
				ST_Distance(g.point, point.geom) AS distance` +
			grievanceJoins + `
			CROSS JOIN point` + w.sql() + `
			ORDER BY distance ASC, g.id ASC`

		rows, err := r.db.QueryxContext(ctx, query, w.args...)
		if err != nil {
			r.logger.Error("Failed to query nearby grievances",
				zap.Float64("lat", center.Lat),
				zap.Float64("lon", center.Lon),
				zap.Float64("radius_m", radiusMeters),
				zap.Error(err))
			yield(nil, errors.ErrDatabaseError)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row nearbyRow
			if err := rows.StructScan(&row); err != nil {
				r.logger.Error("Failed to scan nearby grievance", zap.Error(err))
				yield(nil, errors.ErrDatabaseError)
				return
			}
			item := &domain.NearbyGrievance{Grievance: *row.toDomain(), DistanceMeters: row.Distance}
			if !yield(item, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			r.logger.Error("Nearby grievances iteration failed", zap.Error(err))
			yield(nil, errors.ErrDatabaseError)
		}
	}
}

// exec выполняет UPDATE/DELETE и возвращает ErrGrievanceNotFound, если строка не найдена
func (r *grievanceRepository) exec(ctx context.Context, op string, id uuid.UUID, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to modify grievance", zap.String("op", op), zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read rows affected", zap.String("op", op), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrGrievanceNotFound
	}
	return nil
}

// UpdateStatus меняет статус и completed_at
func (r *grievanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, completedAt *time.Time) error {
	return r.exec(ctx, "update_status", id, `
		UPDATE grievances
		SET status = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $1
	`, id, string(status), completedAt)
}

// UpdateContent меняет поля, которые может редактировать автор
func (r *grievanceRepository) UpdateContent(ctx context.Context, g *domain.Grievance) error {
	return r.exec(ctx, "update_content", g.ID, `
		UPDATE grievances
		SET title = $2, content = $3, category = $4, updated_at = NOW()
		WHERE id = $1
	`, g.ID, g.Title, g.Content, string(g.Category))
}

// UpdateLocation записывает имя места и район
func (r *grievanceRepository) UpdateLocation(ctx context.Context, id uuid.UUID, location string, areaID int64) error {
	return r.exec(ctx, "update_location", id, `
		UPDATE grievances
		SET location = $2, area_id = $3, updated_at = NOW()
		WHERE id = $1
	`, id, location, areaID)
}

// Delete удаляет жалобу
func (r *grievanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "delete", id, `DELETE FROM grievances WHERE id = $1`, id)
}

// ListWithoutArea возвращает ID жалоб, у которых ещё нет района
func (r *grievanceRepository) ListWithoutArea(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM grievances
		WHERE area_id IS NULL
		ORDER BY created_at ASC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		r.logger.Error("Failed to list grievances without area", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return ids, nil
}

// ToggleLike снимает лайк, если он есть, иначе ставит
func (r *grievanceRepository) ToggleLike(ctx context.Context, id uuid.UUID, userID int64) (bool, int, error) {
	var (
		liked bool
		count int
	)

	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		var locked uuid.UUID
		err := tx.GetContext(ctx, &locked, `SELECT id FROM grievances WHERE id = $1 FOR UPDATE`, id)
		if err == sql.ErrNoRows {
			return errors.ErrGrievanceNotFound
		}
		if err != nil {
			return fmt.Errorf("lock grievance: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM grievance_likes WHERE grievance_id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if removed == 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO grievance_likes (grievance_id, user_id) VALUES ($1, $2)`, id, userID); err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
			liked = true
		}

		if err := tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM grievance_likes WHERE grievance_id = $1`, id); err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		return nil
	})
	if err == errors.ErrGrievanceNotFound {
		return false, 0, err
	}
	if err != nil {
		r.logger.Error("Failed to toggle like", zap.String("id", id.String()), zap.Int64("user_id", userID), zap.Error(err))
		return false, 0, errors.ErrDatabaseError
	}

	return liked, count, nil
}

// IsLiked проверяет наличие лайка пользователя
func (r *grievanceRepository) IsLiked(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	var liked bool
	err := r.db.GetContext(ctx, &liked,
		`SELECT EXISTS (SELECT 1 FROM grievance_likes WHERE grievance_id = $1 AND user_id = $2)`, id, userID)
	if err != nil {
		r.logger.Error("Failed to check like", zap.String("id", id.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return liked, nil
}
