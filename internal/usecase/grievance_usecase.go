package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/config"
	"github.com/grievance-service/internal/domain"
	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/pkg/errors"
	"github.com/grievance-service/internal/pkg/metrics"
	"github.com/grievance-service/internal/pkg/validator"
	"github.com/grievance-service/internal/policy"
	"github.com/grievance-service/internal/usecase/dto"
)

// GrievanceUseCase - создание, чтение и изменение жалоб с учётом политики видимости
type GrievanceUseCase struct {
	repo      repository.GrievanceRepository
	resolver  *LocationResolver
	matcher   *AreaMatcher
	proximity *ProximityIndex
	cfg       config.GrievanceConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewGrievanceUseCase - создание нового GrievanceUseCase
func NewGrievanceUseCase(
	repo repository.GrievanceRepository,
	resolver *LocationResolver,
	matcher *AreaMatcher,
	proximity *ProximityIndex,
	cfg config.GrievanceConfig,
	logger *zap.Logger,
) *GrievanceUseCase {
	return &GrievanceUseCase{
		repo:      repo,
		resolver:  resolver,
		matcher:   matcher,
		proximity: proximity,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Create сохраняет жалобу: имя места через LocationResolver, район через AreaMatcher,
// Secret (если задан пароль) в той же транзакции.
func (uc *GrievanceUseCase) Create(ctx context.Context, viewer domain.Viewer, req dto.CreateGrievanceRequest) (*dto.GrievanceResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	visibility := domain.VisibilityPublic
	if req.Visibility != "" {
		visibility = domain.Visibility(req.Visibility)
	}
	category := domain.CategoryEtc
	if req.Category != "" {
		category = domain.Category(req.Category)
	}

	// Пароль к публичной жалобе никогда не проверялся бы - это ошибка клиента
	if req.Password != nil && visibility != domain.VisibilityPrivate {
		return nil, errors.ErrPasswordNotApplicable
	}

	coord, err := domain.NewCoordinate(*req.Latitude, *req.Longitude)
	if err != nil {
		return nil, errors.ErrInvalidCoordinates
	}

	now := uc.now().UTC()
	g := &domain.Grievance{
		ID:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Category:   category,
		Status:     domain.StatusPending,
		Visibility: visibility,
		Coordinate: coord,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !viewer.IsAnonymous() {
		owner := viewer.UserID
		g.UserID = &owner
	}

	var secret *domain.Secret
	if req.Password != nil {
		hash, err := policy.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		secret = &domain.Secret{GrievanceID: g.ID, PasswordHash: hash, CreatedAt: now}
	}

	g.Location = uc.resolver.Resolve(ctx, coord)
	match := uc.matcher.Match(ctx, g.Location, coord)
	areaID, areaName := match.Area.ID, match.Area.Name
	g.AreaID = &areaID
	g.AreaName = &areaName
	if match.Area.LeaderID != nil {
		leaderID := *match.Area.LeaderID
		g.AreaLeaderID = &leaderID
	}

	if err := uc.repo.Create(ctx, g, secret); err != nil {
		return nil, err
	}

	uc.logger.Info("Grievance created",
		zap.String("id", g.ID.String()),
		zap.String("visibility", string(g.Visibility)),
		zap.String("location", g.Location),
		zap.String("area", match.Area.Name),
		zap.String("strategy", string(match.Strategy)))

	return &dto.GrievanceResponse{Grievance: g}, nil
}

// Get возвращает жалобу, если зритель её видит. Пароль даёт разовый доступ к приватной жалобе
// с Secret; отказ по правилам и неверный пароль неотличимы для клиента.
func (uc *GrievanceUseCase) Get(ctx context.Context, viewer domain.Viewer, id uuid.UUID, password *string) (*dto.GrievanceResponse, error) {
	if password != nil && (*password == "" || len(*password) > policy.MaxPasswordLength) {
		return nil, errors.ErrInvalidPassword
	}

	g, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := uc.decideAccess(ctx, g, viewer, password)
	if err != nil {
		return nil, err
	}
	metrics.AccessDecisionsTotal.WithLabelValues(string(decision.Reason)).Inc()

	if !decision.Allowed {
		uc.logger.Debug("Grievance access denied",
			zap.String("id", id.String()),
			zap.String("reason", string(decision.Reason)))
		return nil, errors.ErrNotAccessible
	}

	resp := &dto.GrievanceResponse{Grievance: g}
	if !viewer.IsAnonymous() {
		liked, err := uc.repo.IsLiked(ctx, id, viewer.UserID)
		if err != nil {
			return nil, err
		}
		resp.IsLiked = liked
	}
	return resp, nil
}

func (uc *GrievanceUseCase) decideAccess(ctx context.Context, g *domain.Grievance, viewer domain.Viewer, password *string) (policy.Decision, error) {
	if password == nil {
		return policy.Decide(g, viewer), nil
	}

	var secret *domain.Secret
	if g.IsPrivate() {
		var err error
		if secret, err = uc.repo.GetSecret(ctx, g.ID); err != nil {
			return policy.Decision{}, err
		}
	}

	unlock, err := policy.UnlockWithPassword(g, secret, *password)
	if err != nil {
		return policy.Decision{}, err
	}

	if d := policy.Decide(g, viewer); d.Allowed {
		return d, nil
	}
	return unlock, nil
}

// List - лента, отфильтрованная политикой видимости; по умолчанию от новых к старым
func (uc *GrievanceUseCase) List(ctx context.Context, viewer domain.Viewer, req dto.ListGrievancesRequest) (*dto.ListGrievancesResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = uc.cfg.FeedPageSize
	}
	if pageSize > uc.cfg.FeedMaxPageSize {
		pageSize = uc.cfg.FeedMaxPageSize
	}

	filter := domain.GrievanceListFilter{
		Ordering: domain.DefaultFeedOrdering,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
	if req.Ordering != "" {
		filter.Ordering = domain.GrievanceOrdering(req.Ordering)
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		filter.Search = &search
	}
	if req.Location != "" {
		location := req.Location
		filter.Location = &location
	}
	if req.Status != "" {
		status := domain.Status(req.Status)
		filter.Status = &status
	}
	if req.Category != "" {
		category := domain.Category(req.Category)
		filter.Category = &category
	}
	if req.AreaID > 0 {
		areaID := req.AreaID
		filter.AreaID = &areaID
	}
	if req.Mine {
		if viewer.IsAnonymous() {
			return nil, errors.ErrUnauthenticated
		}
		owner := viewer.UserID
		filter.OwnerID = &owner
	}

	items, total, err := uc.repo.List(ctx, policy.FilterFor(viewer), filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListGrievancesResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasNext:  filter.Offset+len(items) < total,
	}, nil
}

// Nearby - жалобы в радиусе, видимые зрителю, не больше NearbyMaxResults
func (uc *GrievanceUseCase) Nearby(ctx context.Context, viewer domain.Viewer, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	if req.Lat == nil || req.Lng == nil {
		return nil, errors.ErrInvalidCoordinates
	}
	radius := req.RadiusKm
	if radius == 0 {
		radius = uc.cfg.NearbyDefaultRadiusKm
	}

	seq, err := uc.proximity.Nearby(ctx, domain.Coordinate{Lat: *req.Lat, Lon: *req.Lng}, radius, policy.FilterFor(viewer))
	if err != nil {
		return nil, err
	}

	items, truncated, err := Collect(seq, uc.cfg.NearbyMaxResults)
	if err != nil {
		return nil, err
	}

	return &dto.NearbyResponse{
		Items:     items,
		Count:     len(items),
		RadiusKm:  radius,
		Truncated: truncated,
	}, nil
}

// ChangeStatus - только руководитель района или подтверждённый админ/политик
func (uc *GrievanceUseCase) ChangeStatus(ctx context.Context, viewer domain.Viewer, id uuid.UUID, req dto.ChangeStatusRequest) (*domain.Grievance, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if viewer.IsAnonymous() {
		return nil, errors.ErrUnauthenticated
	}

	g, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := policy.AuthorizeStatusChange(g, viewer); !d.Allowed {
		return nil, errors.ErrPermissionDenied
	}

	next := domain.Status(req.Status)
	completedAt := policy.CompletionTime(g.Status, next, req.CompletedAt, g.CompletedAt, uc.now().UTC())

	if err := uc.repo.UpdateStatus(ctx, id, next, completedAt); err != nil {
		return nil, err
	}

	uc.logger.Info("Grievance status changed",
		zap.String("id", id.String()),
		zap.String("from", string(g.Status)),
		zap.String("to", string(next)),
		zap.Int64("by", viewer.UserID))

	g.Status = next
	g.CompletedAt = completedAt
	return g, nil
}

// Update - правка автором; анонимные жалобы не редактируются никем
func (uc *GrievanceUseCase) Update(ctx context.Context, viewer domain.Viewer, id uuid.UUID, req dto.UpdateGrievanceRequest) (*domain.Grievance, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	g, err := uc.loadModifiable(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Content != nil {
		g.Content = *req.Content
	}
	if req.Category != nil {
		g.Category = domain.Category(*req.Category)
	}

	if err := uc.repo.UpdateContent(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete - удаление автором; Secret и лайки удаляются каскадно
func (uc *GrievanceUseCase) Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error {
	if _, err := uc.loadModifiable(ctx, viewer, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *GrievanceUseCase) loadModifiable(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (*domain.Grievance, error) {
	if viewer.IsAnonymous() {
		return nil, errors.ErrUnauthenticated
	}

	g, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsVisible(g, viewer) {
		return nil, errors.ErrNotAccessible
	}
	if d := policy.CanModify(g, viewer); !d.Allowed {
		return nil, errors.ErrPermissionDenied
	}
	return g, nil
}

// ToggleLike - лайк доступен аутентифицированным пользователям, которые видят жалобу
func (uc *GrievanceUseCase) ToggleLike(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (*dto.LikeResponse, error) {
	if viewer.IsAnonymous() {
		return nil, errors.ErrUnauthenticated
	}

	g, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsVisible(g, viewer) {
		return nil, errors.ErrNotAccessible
	}

	liked, count, err := uc.repo.ToggleLike(ctx, id, viewer.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{IsLiked: liked, LikeCount: count}, nil
}
