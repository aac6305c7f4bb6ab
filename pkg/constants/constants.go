package constants

// --- СТАТУСЫ ОБОРУДОВАНИЯ (Совпадает со значениями в БД) ---
const (
	EquipmentStatusActive      = "Active"
	EquipmentStatusMaintenance = "Maintenance"
	EquipmentStatusScrap       = "Scrap"
)

// --- СТАТУСЫ ЗАЯВОК ---
const (
	RequestStatusNew        = "New"
	RequestStatusInProgress = "In Progress"
	RequestStatusRepaired   = "Repaired"
	RequestStatusScrap      = "Scrap"
)

// --- ТИПЫ ЗАЯВОК ---
const (
	RequestTypeCorrective = "Corrective"
	RequestTypePreventive = "Preventive"
)

// --- ПРИОРИТЕТЫ ---
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// --- РОЛИ ---
const (
	RoleAdmin      = "Admin"
	RoleTechnician = "Technician"
	RolePortalUser = "Portal User"
)

var requestStatuses = []string{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusRepaired,
	RequestStatusScrap,
}

var equipmentStatuses = []string{
	EquipmentStatusActive,
	EquipmentStatusMaintenance,
	EquipmentStatusScrap,
}

func IsValidRequestStatus(status string) bool {
	for _, s := range requestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidEquipmentStatus(status string) bool {
	for _, s := range equipmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
