package repositories

import (
	"context"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestFields = "id, subject, description, type, priority, status, equipment_id, technician_id, scheduled_date, created_at, updated_at"

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context) ([]dto.RequestDTO, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	AssignTechnician(ctx context.Context, id uint64, technicianID uint64) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &RequestRepository{storage: storage}
}

func (r *RequestRepository) GetRequests(ctx context.Context) ([]dto.RequestDTO, error) {
	query, args, err := psql.
		Select(
			"r.id", "r.subject", "r.description", "r.type", "r.priority", "r.status",
			"r.scheduled_date", "r.created_at",
			"e.id", "e.name", "e.serial_number", "e.status",
			"u.id", "u.name",
		).
		From("maintenance_requests r").
		Join("equipments e ON e.id = r.equipment_id").
		LeftJoin("users u ON u.id = r.technician_id").
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]dto.RequestDTO, 0)
	for rows.Next() {
		var item entities.MaintenanceRequest
		var equipment dto.ShortEquipmentDTO
		var technicianID *uint64
		var technicianName *string

		err := rows.Scan(
			&item.ID, &item.Subject, &item.Description, &item.Type, &item.Priority, &item.Status,
			&item.ScheduledDate, &item.CreatedAt,
			&equipment.ID, &equipment.Name, &equipment.SerialNumber, &equipment.Status,
			&technicianID, &technicianName,
		)
		if err != nil {
			return nil, err
		}

		requestDTO := dto.RequestDTO{
			ID:          item.ID,
			Subject:     item.Subject,
			Description: item.Description,
			Type:        item.Type,
			Priority:    item.Priority,
			Status:      item.Status,
			Equipment:   equipment,
			CreatedAt:   item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if item.ScheduledDate != nil {
			scheduled := item.ScheduledDate.Format("2006-01-02")
			requestDTO.ScheduledDate = &scheduled
		}
		if technicianID != nil {
			requestDTO.Technician = &dto.ShortUserDTO{ID: *technicianID, Name: *technicianName}
		}

		list = append(list, requestDTO)
	}
	return list, rows.Err()
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	query := "SELECT " + requestFields + " FROM maintenance_requests WHERE id = $1"

	var item entities.MaintenanceRequest
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Subject,
		&item.Description,
		&item.Type,
		&item.Priority,
		&item.Status,
		&item.EquipmentID,
		&item.TechnicianID,
		&item.ScheduledDate,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error) {
	query := `
        INSERT INTO maintenance_requests (subject, description, type, priority, status, equipment_id, scheduled_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		request.Subject,
		request.Description,
		request.Type,
		request.Priority,
		request.Status,
		request.EquipmentID,
		request.ScheduledDate,
	).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (r *RequestRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	query := "UPDATE maintenance_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2"

	result, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) AssignTechnician(ctx context.Context, id uint64, technicianID uint64) error {
	query := "UPDATE maintenance_requests SET technician_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2"

	result, err := r.storage.Exec(ctx, query, technicianID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM maintenance_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
