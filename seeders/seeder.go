package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData наполняет базу демонстрационными данными.
// Все шаги идемпотентны: повторный запуск ничего не дублирует.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демонстрационных данных...")

	if err := seedTeams(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Бригад (Teams): %v", err)
	}
	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Пользователей (Users): %v", err)
	}
	if err := seedEquipments(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Оборудования (Equipments): %v", err)
	}
	if err := seedRequests(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Заявок (Requests): %v", err)
	}

	log.Println("✅ Наполнение демонстрационных данных завершено!")
}

var teamsData = []struct {
	Name     string
	TeamType string
}{
	{Name: "IT Support", TeamType: "IT"},
	{Name: "Mechanical Crew", TeamType: "Mechanical"},
}

func seedTeams(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание бригад...")
	for _, team := range teamsData {
		query := `INSERT INTO maintenance_teams (name, type) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
		if _, err := db.Exec(ctx, query, team.Name, team.TeamType); err != nil {
			return fmt.Errorf("не удалось вставить бригаду %q: %w", team.Name, err)
		}
	}
	return nil
}

var usersData = []struct {
	Name  string
	Email string
	Role  string
	Team  string
}{
	{Name: "John Doe", Email: "john@gearguard.com", Role: "Technician", Team: "IT Support"},
	{Name: "Admin User", Email: "admin@gearguard.com", Role: "Admin", Team: ""},
	{Name: "Jane Smith", Email: "jane@gearguard.com", Role: "Technician", Team: "Mechanical Crew"},
}

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание пользователей...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Password@123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}

	for _, user := range usersData {
		var exists uint64
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", user.Email).Scan(&exists)
		if err == nil {
			continue
		}
		if err != pgx.ErrNoRows {
			return fmt.Errorf("ошибка при проверке пользователя %q: %w", user.Email, err)
		}

		var teamID *uint64
		if user.Team != "" {
			var id uint64
			if err := db.QueryRow(ctx, "SELECT id FROM maintenance_teams WHERE name = $1", user.Team).Scan(&id); err != nil {
				return fmt.Errorf("не найдена бригада %q: %w", user.Team, err)
			}
			teamID = &id
		}

		query := `INSERT INTO users (name, email, password, role, team_id) VALUES ($1, $2, $3, $4, $5)`
		if _, err := db.Exec(ctx, query, user.Name, user.Email, string(hashedPassword), user.Role, teamID); err != nil {
			return fmt.Errorf("не удалось вставить пользователя %q: %w", user.Email, err)
		}
	}
	return nil
}

var equipmentsData = []struct {
	Name         string
	SerialNumber string
	Location     string
	Department   string
	PurchaseDate string
	WarrantyEnd  string
	Team         string
}{
	{
		Name: "Dell XPS 15", SerialNumber: "DX123456", Location: "Office A", Department: "IT",
		PurchaseDate: "2023-01-15", WarrantyEnd: "2026-01-15", Team: "IT Support",
	},
	{
		Name: "Bosch Power Drill", SerialNumber: "BPD98765", Location: "Workshop", Department: "Maintenance",
		PurchaseDate: "2022-06-10", WarrantyEnd: "2024-06-10", Team: "Mechanical Crew",
	},
}

func seedEquipments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание оборудования...")
	for _, item := range equipmentsData {
		var teamID uint64
		if err := db.QueryRow(ctx, "SELECT id FROM maintenance_teams WHERE name = $1", item.Team).Scan(&teamID); err != nil {
			return fmt.Errorf("не найдена бригада %q: %w", item.Team, err)
		}

		query := `INSERT INTO equipments (name, serial_number, location, department, status, purchase_date, warranty_end, team_id)
                  VALUES ($1, $2, $3, $4, 'Active', $5, $6, $7)
                  ON CONFLICT (serial_number) DO NOTHING`
		if _, err := db.Exec(ctx, query,
			item.Name, item.SerialNumber, item.Location, item.Department,
			item.PurchaseDate, item.WarrantyEnd, teamID,
		); err != nil {
			return fmt.Errorf("не удалось вставить оборудование %q: %w", item.SerialNumber, err)
		}
	}
	return nil
}

func seedRequests(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание заявок...")

	subject := "Laptop Overheating"
	var exists uint64
	err := db.QueryRow(ctx, "SELECT id FROM maintenance_requests WHERE subject = $1", subject).Scan(&exists)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return fmt.Errorf("ошибка при проверке заявки %q: %w", subject, err)
	}

	var equipmentID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM equipments WHERE serial_number = 'DX123456'").Scan(&equipmentID); err != nil {
		return fmt.Errorf("не найдено оборудование для заявки: %w", err)
	}
	var technicianID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = 'john@gearguard.com'").Scan(&technicianID); err != nil {
		return fmt.Errorf("не найден техник для заявки: %w", err)
	}

	query := `INSERT INTO maintenance_requests (subject, description, type, priority, status, equipment_id, technician_id)
              VALUES ($1, $2, 'Corrective', 'High', 'New', $3, $4)`
	if _, err := db.Exec(ctx, query, subject, "Dell XPS 15 перегревается под нагрузкой", equipmentID, technicianID); err != nil {
		return fmt.Errorf("не удалось вставить заявку %q: %w", subject, err)
	}
	return nil
}
