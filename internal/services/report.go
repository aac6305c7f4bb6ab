package services

import (
	"context"
	"fmt"
	"time"

	"gearguard/internal/repositories"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	BuildEquipmentRegister(ctx context.Context) (*excelize.File, error)
}

type ReportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewReportService(equipmentRepo repositories.EquipmentRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

var registerHeaders = []string{"ID", "Название", "Серийный номер", "Локация", "Отдел", "Статус", "Дата покупки", "Гарантия до", "Бригада", "Открытых заявок"}

// BuildEquipmentRegister собирает реестр оборудования в xlsx-файл.
func (s *ReportService) BuildEquipmentRegister(ctx context.Context) (*excelize.File, error) {
	list, err := s.equipmentRepo.GetEquipments(ctx)
	if err != nil {
		s.logger.Error("BuildEquipmentRegister: не удалось получить оборудование", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, header := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, item := range list {
		row := i + 2
		openRequests := 0
		for _, req := range item.Requests {
			if req.Status != "Repaired" && req.Status != "Scrap" {
				openRequests++
			}
		}

		teamName := ""
		if item.Team != nil {
			teamName = item.Team.Name
		}

		values := []interface{}{
			item.ID, item.Name, item.SerialNumber, item.Location, item.Department,
			item.Status, item.PurchaseDate, item.WarrantyEnd, teamName, openRequests,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetCellValue(sheet, "L1", fmt.Sprintf("Сформировано: %s", time.Now().Format("2006-01-02 15:04:05")))
	return f, nil
}
