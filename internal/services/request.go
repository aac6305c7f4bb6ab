package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context) ([]dto.RequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestDTO, error)
	TransitionStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) (*entities.MaintenanceRequest, error)
	AssignTechnician(ctx context.Context, id uint64, payload dto.AssignTechnicianDTO) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestService struct {
	txManager     repositories.TxManagerInterface
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		txManager:     txManager,
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context) ([]dto.RequestDTO, error) {
	return s.requestRepo.GetRequests(ctx)
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("CreateRequest: оборудование не найдено", zap.Uint64("equipmentId", payload.EquipmentID))
			return nil, apperrors.NewHttpError(http.StatusNotFound, "Оборудование не найдено", nil, nil)
		}
		return nil, err
	}

	priority := payload.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}

	requestEntity := &entities.MaintenanceRequest{
		Subject:     payload.Subject,
		Description: payload.Description,
		Type:        payload.Type,
		Priority:    priority,
		// Статус от клиента игнорируется: новая заявка всегда "New".
		Status:      constants.RequestStatusNew,
		EquipmentID: equipment.ID,
	}

	if payload.ScheduledDate != "" {
		scheduled, err := time.Parse("2006-01-02", payload.ScheduledDate)
		if err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат даты планирования", err, nil)
		}
		requestEntity.ScheduledDate = &scheduled
	}

	newID, err := s.requestRepo.CreateRequest(ctx, requestEntity)
	if err != nil {
		s.logger.Error("CreateRequest: ошибка создания заявки", zap.Error(err))
		return nil, err
	}
	requestEntity.ID = newID

	result := &dto.RequestDTO{
		ID:          newID,
		Subject:     requestEntity.Subject,
		Description: requestEntity.Description,
		Type:        requestEntity.Type,
		Priority:    requestEntity.Priority,
		Status:      requestEntity.Status,
		Equipment: dto.ShortEquipmentDTO{
			ID:           equipment.ID,
			Name:         equipment.Name,
			SerialNumber: equipment.SerialNumber,
			Status:       equipment.Status,
		},
	}
	if requestEntity.ScheduledDate != nil {
		scheduled := requestEntity.ScheduledDate.Format("2006-01-02")
		result.ScheduledDate = &scheduled
	}
	return result, nil
}

// TransitionStatus меняет статус заявки и синхронно с ним статус оборудования:
// "Scrap" списывает оборудование, "Repaired" возвращает его в "Active".
// Обе записи меняются в одной транзакции.
func (s *RequestService) TransitionStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) (*entities.MaintenanceRequest, error) {
	if !constants.IsValidRequestStatus(payload.Status) {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Недопустимый статус заявки", nil,
			map[string]interface{}{"status": payload.Status})
	}

	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound, "Заявка не найдена", nil, nil)
		}
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requestRepo.UpdateStatusInTx(ctx, tx, id, payload.Status); err != nil {
			return err
		}

		switch payload.Status {
		case constants.RequestStatusScrap:
			return s.equipmentRepo.UpdateEquipmentStatusInTx(ctx, tx, request.EquipmentID, constants.EquipmentStatusScrap)
		case constants.RequestStatusRepaired:
			return s.equipmentRepo.UpdateEquipmentStatusInTx(ctx, tx, request.EquipmentID, constants.EquipmentStatusActive)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("TransitionStatus: ошибка перевода статуса",
			zap.Uint64("requestId", id), zap.String("status", payload.Status), zap.Error(err))
		return nil, err
	}

	request.Status = payload.Status
	return request, nil
}

func (s *RequestService) AssignTechnician(ctx context.Context, id uint64, payload dto.AssignTechnicianDTO) error {
	if _, err := s.userRepo.FindUser(ctx, payload.TechnicianID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound, "Техник не найден", nil, nil)
		}
		return err
	}

	if err := s.requestRepo.AssignTechnician(ctx, id, payload.TechnicianID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound, "Заявка не найдена", nil, nil)
		}
		return err
	}
	return nil
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound, "Заявка не найдена", nil, nil)
		}
		s.logger.Error("DeleteRequest: ошибка удаления заявки", zap.Uint64("requestId", id), zap.Error(err))
		return err
	}
	return nil
}
