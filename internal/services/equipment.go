package services

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateEquipmentStatusDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
	PredictFailure(ctx context.Context, id uint64) (*dto.PredictionDTO, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepositoryInterface, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return s.equipmentRepo.GetEquipments(ctx)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipmentDTO(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound, "Оборудование не найдено", nil, nil)
		}
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	purchaseDate, err := time.Parse("2006-01-02", payload.PurchaseDate)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат даты покупки", err, nil)
	}
	warrantyEnd, err := time.Parse("2006-01-02", payload.WarrantyEnd)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат даты окончания гарантии", err, nil)
	}

	equipmentEntity := &entities.Equipment{
		Name:         payload.Name,
		SerialNumber: payload.SerialNumber,
		Location:     payload.Location,
		Department:   payload.Department,
		Status:       constants.EquipmentStatusActive,
		PurchaseDate: purchaseDate,
		WarrantyEnd:  warrantyEnd,
		TeamID:       payload.TeamID,
	}

	newID, err := s.equipmentRepo.CreateEquipment(ctx, equipmentEntity)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Warn("CreateEquipment: серийный номер уже существует", zap.String("serialNumber", payload.SerialNumber))
			return nil, apperrors.NewHttpError(http.StatusConflict, "Оборудование с таким серийным номером уже существует", nil, nil)
		}
		return nil, err
	}

	return s.FindEquipment(ctx, newID)
}

func (s *EquipmentService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateEquipmentStatusDTO) error {
	if !constants.IsValidEquipmentStatus(payload.Status) {
		return apperrors.NewHttpError(http.StatusBadRequest, "Недопустимый статус оборудования", nil,
			map[string]interface{}{"status": payload.Status})
	}

	if err := s.equipmentRepo.UpdateEquipmentStatus(ctx, id, payload.Status); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound, "Оборудование не найдено", nil, nil)
		}
		return err
	}
	return nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusNotFound, "Оборудование не найдено", nil, nil)
		}
		s.logger.Error("DeleteEquipment: ошибка удаления оборудования", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *EquipmentService) PredictFailure(ctx context.Context, id uint64) (*dto.PredictionDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusNotFound, "Оборудование не найдено", nil, nil)
		}
		return nil, err
	}

	prediction := Predict(equipment, time.Now(), rand.Float64()*30)
	return &prediction, nil
}
