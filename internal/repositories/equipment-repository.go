package repositories

import (
	"context"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const equipmentFields = "id, name, serial_number, location, department, status, team_id, purchase_date, warranty_end, created_at, updated_at"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindEquipmentDTO(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error)
	UpdateEquipmentStatus(ctx context.Context, id uint64, status string) error
	UpdateEquipmentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func (r *EquipmentRepository) selectEquipments(ctx context.Context, pred interface{}, args ...interface{}) ([]dto.EquipmentDTO, error) {
	builder := psql.
		Select(
			"e.id", "e.name", "e.serial_number", "e.location", "e.department", "e.status",
			"e.purchase_date", "e.warranty_end", "e.created_at",
			"t.id", "t.name", "t.type",
		).
		From("equipments e").
		LeftJoin("maintenance_teams t ON t.id = e.team_id").
		OrderBy("e.id")

	if pred != nil {
		builder = builder.Where(pred, args...)
	}

	query, queryArgs, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]dto.EquipmentDTO, 0)
	index := make(map[uint64]int)

	for rows.Next() {
		var item entities.Equipment
		var teamID *uint64
		var teamName, teamType *string

		err := rows.Scan(
			&item.ID, &item.Name, &item.SerialNumber, &item.Location, &item.Department, &item.Status,
			&item.PurchaseDate, &item.WarrantyEnd, &item.CreatedAt,
			&teamID, &teamName, &teamType,
		)
		if err != nil {
			return nil, err
		}

		equipmentDTO := dto.EquipmentDTO{
			ID:           item.ID,
			Name:         item.Name,
			SerialNumber: item.SerialNumber,
			Location:     item.Location,
			Department:   item.Department,
			Status:       item.Status,
			PurchaseDate: item.PurchaseDate.Format("2006-01-02"),
			WarrantyEnd:  item.WarrantyEnd.Format("2006-01-02"),
			Requests:     make([]dto.ShortRequestDTO, 0),
			CreatedAt:    item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if teamID != nil {
			equipmentDTO.Team = &dto.ShortTeamDTO{ID: *teamID, Name: *teamName, Type: *teamType}
		}

		index[item.ID] = len(list)
		list = append(list, equipmentDTO)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]uint64, 0, len(list))
	for id := range index {
		ids = append(ids, id)
	}

	reqQuery, reqArgs, err := psql.
		Select("id", "subject", "status", "equipment_id").
		From("maintenance_requests").
		Where(sq.Eq{"equipment_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	reqRows, err := r.storage.Query(ctx, reqQuery, reqArgs...)
	if err != nil {
		return nil, err
	}
	defer reqRows.Close()

	for reqRows.Next() {
		var req dto.ShortRequestDTO
		var equipmentID uint64
		if err := reqRows.Scan(&req.ID, &req.Subject, &req.Status, &equipmentID); err != nil {
			return nil, err
		}
		if i, ok := index[equipmentID]; ok {
			list[i].Requests = append(list[i].Requests, req)
		}
	}
	return list, reqRows.Err()
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return r.selectEquipments(ctx, nil)
}

func (r *EquipmentRepository) FindEquipmentDTO(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	list, err := r.selectEquipments(ctx, sq.Eq{"e.id": id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &list[0], nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := "SELECT " + equipmentFields + " FROM equipments WHERE id = $1"

	var item entities.Equipment
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.SerialNumber,
		&item.Location,
		&item.Department,
		&item.Status,
		&item.TeamID,
		&item.PurchaseDate,
		&item.WarrantyEnd,
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

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	query := `
        INSERT INTO equipments (name, serial_number, location, department, status, purchase_date, warranty_end, team_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		equipment.Name,
		equipment.SerialNumber,
		equipment.Location,
		equipment.Department,
		equipment.Status,
		equipment.PurchaseDate,
		equipment.WarrantyEnd,
		equipment.TeamID,
	).Scan(&newID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrConflict
		}
		return 0, err
	}
	return newID, nil
}

func (r *EquipmentRepository) UpdateEquipmentStatus(ctx context.Context, id uint64, status string) error {
	return r.updateStatus(ctx, r.storage, id, status)
}

func (r *EquipmentRepository) UpdateEquipmentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	return r.updateStatus(ctx, tx, id, status)
}

func (r *EquipmentRepository) updateStatus(ctx context.Context, q querier, id uint64, status string) error {
	query := "UPDATE equipments SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2"

	result, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
