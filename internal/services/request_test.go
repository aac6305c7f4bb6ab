package services

import (
	"context"
	"testing"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Фейки для юнит-тестов сервисов ---

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type fakeRequestRepo struct {
	requests      map[uint64]*entities.MaintenanceRequest
	nextID        uint64
	statusUpdates map[uint64]string
	assigned      map[uint64]uint64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:      make(map[uint64]*entities.MaintenanceRequest),
		nextID:        1,
		statusUpdates: make(map[uint64]string),
		assigned:      make(map[uint64]uint64),
	}
}

func (r *fakeRequestRepo) GetRequests(ctx context.Context) ([]dto.RequestDTO, error) {
	return nil, nil
}

func (r *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error) {
	id := r.nextID
	r.nextID++
	copied := *request
	copied.ID = id
	r.requests[id] = &copied
	return id, nil
}

func (r *fakeRequestRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	request, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	request.Status = status
	r.statusUpdates[id] = status
	return nil
}

func (r *fakeRequestRepo) AssignTechnician(ctx context.Context, id uint64, technicianID uint64) error {
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrNotFound
	}
	r.assigned[id] = technicianID
	return nil
}

func (r *fakeRequestRepo) DeleteRequest(ctx context.Context, id uint64) error {
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

type fakeEquipmentRepo struct {
	equipments    map[uint64]*entities.Equipment
	statusUpdates map[uint64]string
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{
		equipments:    make(map[uint64]*entities.Equipment),
		statusUpdates: make(map[uint64]string),
	}
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return nil, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	equipment, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *equipment
	return &copied, nil
}

func (r *fakeEquipmentRepo) FindEquipmentDTO(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &dto.EquipmentDTO{ID: equipment.ID, Name: equipment.Name, Status: equipment.Status}, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	id := uint64(len(r.equipments) + 1)
	copied := *equipment
	copied.ID = id
	r.equipments[id] = &copied
	return id, nil
}

func (r *fakeEquipmentRepo) UpdateEquipmentStatus(ctx context.Context, id uint64, status string) error {
	return r.UpdateEquipmentStatusInTx(ctx, nil, id, status)
}

func (r *fakeEquipmentRepo) UpdateEquipmentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	equipment, ok := r.equipments[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	equipment.Status = status
	r.statusUpdates[id] = status
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, ok := r.equipments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipments, id)
	return nil
}

type fakeUserRepo struct {
	users  map[uint64]*entities.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*entities.User), nextID: 1}
}

func (r *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) (uint64, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrConflict
		}
	}
	id := r.nextID
	r.nextID++
	copied := *user
	copied.ID = id
	r.users[id] = &copied
	return id, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

// --- Тесты ---

func newRequestServiceForTest() (RequestServiceInterface, *fakeTxManager, *fakeRequestRepo, *fakeEquipmentRepo, *fakeUserRepo) {
	txManager := &fakeTxManager{}
	requestRepo := newFakeRequestRepo()
	equipmentRepo := newFakeEquipmentRepo()
	userRepo := newFakeUserRepo()
	svc := NewRequestService(txManager, requestRepo, equipmentRepo, userRepo, zap.NewNop())
	return svc, txManager, requestRepo, equipmentRepo, userRepo
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("статус от клиента игнорируется, приоритет по умолчанию Medium", func(t *testing.T) {
		svc, _, requestRepo, equipmentRepo, _ := newRequestServiceForTest()
		equipmentRepo.equipments[1] = &entities.Equipment{ID: 1, Name: "Dell XPS 15", SerialNumber: "DX123456", Status: "Active"}

		result, err := svc.CreateRequest(ctx, dto.CreateRequestDTO{
			Subject:     "Laptop Overheating",
			Type:        "Corrective",
			EquipmentID: 1,
			Status:      "Repaired",
		})

		require.NoError(t, err)
		assert.Equal(t, "New", result.Status, "новая заявка всегда должна создаваться в статусе New")
		assert.Equal(t, "Medium", result.Priority)
		assert.Equal(t, "New", requestRepo.requests[result.ID].Status)
	})

	t.Run("явный приоритет сохраняется", func(t *testing.T) {
		svc, _, _, equipmentRepo, _ := newRequestServiceForTest()
		equipmentRepo.equipments[1] = &entities.Equipment{ID: 1, Status: "Active"}

		result, err := svc.CreateRequest(ctx, dto.CreateRequestDTO{
			Subject:     "Drill jammed",
			Type:        "Corrective",
			Priority:    "High",
			EquipmentID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, "High", result.Priority)
	})

	t.Run("несуществующее оборудование - 404", func(t *testing.T) {
		svc, _, _, _, _ := newRequestServiceForTest()

		_, err := svc.CreateRequest(ctx, dto.CreateRequestDTO{
			Subject:     "Ghost equipment",
			Type:        "Corrective",
			EquipmentID: 99,
		})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})

	t.Run("неверная дата планирования - 400", func(t *testing.T) {
		svc, _, _, equipmentRepo, _ := newRequestServiceForTest()
		equipmentRepo.equipments[1] = &entities.Equipment{ID: 1, Status: "Active"}

		_, err := svc.CreateRequest(ctx, dto.CreateRequestDTO{
			Subject:       "Bad date",
			Type:          "Preventive",
			EquipmentID:   1,
			ScheduledDate: "31-12-2026",
		})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})
}

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	seed := func(requestRepo *fakeRequestRepo, equipmentRepo *fakeEquipmentRepo) {
		equipmentRepo.equipments[1] = &entities.Equipment{ID: 1, Name: "Dell XPS 15", Status: "Active"}
		requestRepo.requests[10] = &entities.MaintenanceRequest{ID: 10, Subject: "Laptop Overheating", Status: "In Progress", EquipmentID: 1}
	}

	t.Run("Scrap списывает оборудование в той же транзакции", func(t *testing.T) {
		svc, txManager, requestRepo, equipmentRepo, _ := newRequestServiceForTest()
		seed(requestRepo, equipmentRepo)

		result, err := svc.TransitionStatus(ctx, 10, dto.UpdateRequestStatusDTO{Status: "Scrap"})

		require.NoError(t, err)
		assert.Equal(t, "Scrap", result.Status)
		assert.Equal(t, "Scrap", equipmentRepo.equipments[1].Status)
		assert.Equal(t, 1, txManager.calls)
	})

	t.Run("Repaired возвращает оборудование в Active", func(t *testing.T) {
		svc, _, requestRepo, equipmentRepo, _ := newRequestServiceForTest()
		seed(requestRepo, equipmentRepo)
		equipmentRepo.equipments[1].Status = "Maintenance"

		result, err := svc.TransitionStatus(ctx, 10, dto.UpdateRequestStatusDTO{Status: "Repaired"})

		require.NoError(t, err)
		assert.Equal(t, "Repaired", result.Status)
		assert.Equal(t, "Active", equipmentRepo.equipments[1].Status)
	})

	t.Run("In Progress не трогает оборудование", func(t *testing.T) {
		svc, _, requestRepo, equipmentRepo, _ := newRequestServiceForTest()
		seed(requestRepo, equipmentRepo)

		_, err := svc.TransitionStatus(ctx, 10, dto.UpdateRequestStatusDTO{Status: "In Progress"})

		require.NoError(t, err)
		assert.Empty(t, equipmentRepo.statusUpdates)
	})

	t.Run("повторный перевод в тот же статус идемпотентен", func(t *testing.T) {
		svc, _, requestRepo, equipmentRepo, _ := newRequestServiceForTest()
		seed(requestRepo, equipmentRepo)

		_, err := svc.TransitionStatus(ctx, 10, dto.UpdateRequestStatusDTO{Status: "Scrap"})
		require.NoError(t, err)
		result, err := svc.TransitionStatus(ctx, 10, dto.UpdateRequestStatusDTO{Status: "Scrap"})

		require.NoError(t, err)
		assert.Equal(t, "Scrap", result.Status)
		assert.Equal(t, "Scrap", equipmentRepo.equipments[1].Status)
	})

	t.Run("недопустимый статус - 400", func(t *testing.T) {
		svc, txManager, requestRepo, equipmentRepo, _ := newRequestServiceForTest()
		seed(requestRepo, equipmentRepo)

		_, err := svc.TransitionStatus(ctx, 10, dto.UpdateRequestStatusDTO{Status: "Done"})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
		assert.Equal(t, 0, txManager.calls)
	})

	t.Run("несуществующая заявка - 404", func(t *testing.T) {
		svc, _, _, _, _ := newRequestServiceForTest()

		_, err := svc.TransitionStatus(ctx, 99, dto.UpdateRequestStatusDTO{Status: "Repaired"})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})
}

func TestAssignTechnician(t *testing.T) {
	ctx := context.Background()

	t.Run("назначение существующего техника", func(t *testing.T) {
		svc, _, requestRepo, _, userRepo := newRequestServiceForTest()
		userRepo.users[5] = &entities.User{ID: 5, Name: "John Doe", Role: "Technician"}
		requestRepo.requests[10] = &entities.MaintenanceRequest{ID: 10, EquipmentID: 1}

		err := svc.AssignTechnician(ctx, 10, dto.AssignTechnicianDTO{TechnicianID: 5})

		require.NoError(t, err)
		assert.Equal(t, uint64(5), requestRepo.assigned[10])
	})

	t.Run("несуществующий техник - 404", func(t *testing.T) {
		svc, _, requestRepo, _, _ := newRequestServiceForTest()
		requestRepo.requests[10] = &entities.MaintenanceRequest{ID: 10, EquipmentID: 1}

		err := svc.AssignTechnician(ctx, 10, dto.AssignTechnicianDTO{TechnicianID: 99})

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})
}

func TestDeleteRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("удаление существующей заявки", func(t *testing.T) {
		svc, _, requestRepo, _, _ := newRequestServiceForTest()
		requestRepo.requests[10] = &entities.MaintenanceRequest{ID: 10, EquipmentID: 1}

		require.NoError(t, svc.DeleteRequest(ctx, 10))
		assert.Empty(t, requestRepo.requests)
	})

	t.Run("несуществующая заявка - 404", func(t *testing.T) {
		svc, _, _, _, _ := newRequestServiceForTest()

		err := svc.DeleteRequest(ctx, 99)

		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})
}
