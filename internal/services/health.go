package services

import (
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
)

const hoursPerYear = 24 * 365

// HealthScore - оценка состояния оборудования для витрины, нигде не хранится.
// База 100, минус 5 за каждый полный год возраста, минус 20 в статусе
// "Maintenance"; списанное оборудование всегда 0. Результат зажат в [0, 100].
func HealthScore(equipment *entities.Equipment, now time.Time) int {
	health := 100

	ageYears := int(now.Sub(equipment.PurchaseDate).Hours() / hoursPerYear)
	if ageYears > 0 {
		health -= ageYears * 5
	}

	if equipment.Status == constants.EquipmentStatusMaintenance {
		health -= 20
	}
	if equipment.Status == constants.EquipmentStatusScrap {
		health = 0
	}

	if health < 0 {
		health = 0
	}
	if health > 100 {
		health = 100
	}
	return health
}

// Predict - "AI"-прогноз поверх HealthScore. jitter задаётся снаружи
// (случайное число из [0, 30)), поэтому функция детерминирована в тестах.
func Predict(equipment *entities.Equipment, now time.Time, jitter float64) dto.PredictionDTO {
	health := HealthScore(equipment, now)
	failureDays := int(float64(health)*0.5 + jitter)

	recommendation := "Urgent Repair Required"
	if health > 70 {
		recommendation = "Optimal Condition"
	} else if health > 40 {
		recommendation = "Preventive Maintenance Recommended"
	}

	return dto.PredictionDTO{
		Health:              health,
		FailureDays:         failureDays,
		Recommendation:      recommendation,
		NextMaintenanceDate: now.AddDate(0, 0, failureDays).Format("2006-01-02"),
	}
}
