package services

import (
	"context"
	"errors"
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"

	"go.uber.org/zap"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]dto.TeamDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.MaintenanceTeam, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamService struct {
	teamRepo repositories.TeamRepositoryInterface
	logger   *zap.Logger
}

func NewTeamService(teamRepo repositories.TeamRepositoryInterface, logger *zap.Logger) TeamServiceInterface {
	return &TeamService{
		teamRepo: teamRepo,
		logger:   logger,
	}
}

func (s *TeamService) GetTeams(ctx context.Context) ([]dto.TeamDTO, error) {
	return s.teamRepo.GetTeams(ctx)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.MaintenanceTeam, error) {
	team, err := s.teamRepo.CreateTeam(ctx, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Warn("CreateTeam: бригада с таким названием уже существует", zap.String("name", payload.Name))
			return nil, apperrors.NewHttpError(http.StatusConflict, "Бригада с таким названием уже существует", nil, nil)
		}
		s.logger.Error("CreateTeam: ошибка создания бригады", zap.Error(err))
		return nil, err
	}
	return team, nil
}

// DeleteTeam удаляет бригаду без проверки ссылок: оборудование и пользователи
// отвязываются на уровне схемы (ON DELETE SET NULL).
func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.teamRepo.DeleteTeam(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound, "Бригада не найдена", nil, nil)
		}
		return err
	}
	return nil
}
