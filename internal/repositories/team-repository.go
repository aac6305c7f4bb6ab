package repositories

import (
	"context"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]dto.TeamDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.MaintenanceTeam, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

func (r *TeamRepository) GetTeams(ctx context.Context) ([]dto.TeamDTO, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name, type, created_at FROM maintenance_teams ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]dto.TeamDTO, 0)
	index := make(map[uint64]int)

	for rows.Next() {
		var team entities.MaintenanceTeam
		if err := rows.Scan(&team.ID, &team.Name, &team.Type, &team.CreatedAt); err != nil {
			return nil, err
		}
		index[team.ID] = len(teams)
		teams = append(teams, dto.TeamDTO{
			ID:        team.ID,
			Name:      team.Name,
			Type:      team.Type,
			Users:     make([]dto.ShortUserDTO, 0),
			CreatedAt: team.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Участники вторым запросом, чтобы не плодить строки в джойне.
	userRows, err := r.storage.Query(ctx, "SELECT id, name, team_id FROM users WHERE team_id IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer userRows.Close()

	for userRows.Next() {
		var user dto.ShortUserDTO
		var teamID uint64
		if err := userRows.Scan(&user.ID, &user.Name, &teamID); err != nil {
			return nil, err
		}
		if i, ok := index[teamID]; ok {
			teams[i].Users = append(teams[i].Users, user)
		}
	}
	return teams, userRows.Err()
}

func (r *TeamRepository) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.MaintenanceTeam, error) {
	query := `
        INSERT INTO maintenance_teams (name, type)
        VALUES ($1, $2)
        RETURNING id, name, type, created_at
    `

	var team entities.MaintenanceTeam
	err := r.storage.QueryRow(ctx, query, payload.Name, payload.Type).Scan(
		&team.ID,
		&team.Name,
		&team.Type,
		&team.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM maintenance_teams WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
