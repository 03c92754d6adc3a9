package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/subtrack/internal/catalog/domain"
	"github.com/smallbiznis/subtrack/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Catalog {
	return &Service{
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Service{}, domain.ErrInvalidName
	}

	service := domain.Service{
		ID:          s.genID.Generate(),
		Code:        slug.Make(name),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, &service); err != nil {
		return domain.Service{}, err
	}

	s.log.Info("service created",
		zap.String("service_id", service.ID.String()),
		zap.String("code", service.Code),
	)
	return service, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetServiceRequest) (domain.Service, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return domain.Service{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	return s.repo.List(ctx)
}
