package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
)

type areaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAreaRepository создает новый экземпляр AreaRepository
func NewAreaRepository(db *DB) repository.AreaRepository {
	return &areaRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const areaColumns = `
	id, name,
	ST_Y(center_point::geometry) AS lat, ST_X(center_point::geometry) AS lng,
	(boundary IS NOT NULL) AS has_boundary,
	leader_id, created_at, updated_at`

type areaRow struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lng         sql.NullFloat64 `db:"lng"`
	HasBoundary bool            `db:"has_boundary"`
	LeaderID    *int64          `db:"leader_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r areaRow) toDomain() *domain.Area {
	return &domain.Area{
		ID:          r.ID,
		Name:        r.Name,
		Center:      domain.Coordinate{Lat: r.Lat.Float64, Lon: r.Lng.Float64},
		HasBoundary: r.HasBoundary,
		LeaderID:    r.LeaderID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// getOne выполняет запрос, возвращающий не более одного района
func (r *areaRepository) getOne(ctx context.Context, op, query string, args ...interface{}) (*domain.Area, error) {
	var row areaRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAreaNotFound
	}
	if err != nil {
		r.logger.Error("Failed to query area", zap.String("op", op), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return row.toDomain(), nil
}

// GetByID возвращает район по ID
func (r *areaRepository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	return r.getOne(ctx, "get_by_id", `SELECT `+areaColumns+` FROM areas WHERE id = $1`, id)
}

// GetByName возвращает район с точным именем
func (r *areaRepository) GetByName(ctx context.Context, name string) (*domain.Area, error) {
	return r.getOne(ctx, "get_by_name", `SELECT `+areaColumns+` FROM areas WHERE name = $1`, name)
}

// List возвращает все районы по имени
func (r *areaRepository) List(ctx context.Context) ([]*domain.Area, error) {
	var rows []areaRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+areaColumns+` FROM areas ORDER BY name COLLATE "C" ASC, id ASC`); err != nil {
		r.logger.Error("Failed to list areas", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	areas := make([]*domain.Area, 0, len(rows))
	for _, row := range rows {
		areas = append(areas, row.toDomain())
	}
	return areas, nil
}

// FindByNameFold - точное совпадение имени без учёта регистра
func (r *areaRepository) FindByNameFold(ctx context.Context, placeName string, excludeID int64) (*domain.Area, error) {
	query := `
		SELECT ` + areaColumns + `
		FROM areas
		WHERE LOWER(name) = LOWER($1) AND id <> $2
		ORDER BY name COLLATE "C" ASC, id ASC
		LIMIT 1
	`
	return r.getOne(ctx, "find_by_name_fold", query, placeName, excludeID)
}

// FindContainedIn - первый район, имя которого входит в placeName.
// Порядок (имя, id) делает выбор детерминированным, когда подходят несколько районов.
func (r *areaRepository) FindContainedIn(ctx context.Context, placeName string, excludeID int64) (*domain.Area, error) {
	query := `
		SELECT ` + areaColumns + `
		FROM areas
		WHERE id <> $2
		  AND name <> ''
		  AND strpos(LOWER($1), LOWER(name)) > 0
		ORDER BY name COLLATE "C" ASC, id ASC
		LIMIT 1
	`
	return r.getOne(ctx, "find_contained_in", query, placeName, excludeID)
}

// FindNearest - район с ближайшим центром; районы без центра не участвуют
func (r *areaRepository) FindNearest(ctx context.Context, c domain.Coordinate, excludeID int64) (*domain.Area, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT ` + areaColumns + `
		FROM areas, point
		WHERE center_point IS NOT NULL AND id <> $3
		ORDER BY ST_Distance(center_point, point.geom) ASC, name COLLATE "C" ASC, id ASC
		LIMIT 1
	`
	return r.getOne(ctx, "find_nearest", query, c.Lon, c.Lat, excludeID)
}
