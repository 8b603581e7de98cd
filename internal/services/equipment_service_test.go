package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

type equipmentTestEnv struct {
	db      *gorm.DB
	service *EquipmentService
}

func setupEquipmentTestEnv(t *testing.T) equipmentTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Equipment{},
		&models.TimelineEvent{},
	)
	require.NoError(t, err)

	equipmentRepo := repository.NewEquipmentRepository(db)
	timelineRepo := repository.NewTimelineRepository(db)
	service := NewEquipmentService(equipmentRepo, timelineRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return equipmentTestEnv{db: db, service: service}
}

func equipmentPrincipal() policy.Principal {
	return policy.Principal{
		ID:            1,
		Name:          "Marco",
		Role:          models.RoleSupervisor,
		Establishment: "Bison Den",
	}
}

func TestEquipmentService_BrokenTransitionEvent(t *testing.T) {
	env := setupEquipmentTestEnv(t)

	eq, err := env.service.CreateEquipment(equipmentPrincipal(), CreateEquipmentInput{
		Name:     "Walk-in freezer",
		Location: "Back kitchen",
	})
	require.NoError(t, err)
	require.Equal(t, models.EquipmentStatusOperational, eq.Status)

	broken := models.EquipmentStatusBroken
	_, err = env.service.UpdateEquipment(equipmentPrincipal(), eq.ID, UpdateEquipmentInput{
		Status: &broken,
	})
	require.NoError(t, err)

	var event models.TimelineEvent
	require.NoError(t, env.db.First(&event).Error)
	require.Equal(t, "Walk-in freezer reported BROKEN", event.Text)
	require.Equal(t, models.TimelineTypeAlert, event.Type)
}

func TestEquipmentService_OtherEstablishmentFenced(t *testing.T) {
	env := setupEquipmentTestEnv(t)

	eq, err := env.service.CreateEquipment(equipmentPrincipal(), CreateEquipmentInput{
		Name: "Walk-in freezer",
	})
	require.NoError(t, err)

	outsider := policy.Principal{
		ID:            7,
		Name:          "Quinn",
		Role:          models.RoleEmployee,
		Establishment: "Wolf Lodge",
	}

	broken := models.EquipmentStatusBroken
	_, err = env.service.UpdateEquipment(outsider, eq.ID, UpdateEquipmentInput{
		Status: &broken,
	})
	require.ErrorIs(t, err, ErrWrongEstablishment)

	err = env.service.DeleteEquipment(outsider, eq.ID)
	require.ErrorIs(t, err, ErrWrongEstablishment)

	var still models.Equipment
	require.NoError(t, env.db.First(&still, eq.ID).Error)
	require.Equal(t, models.EquipmentStatusOperational, still.Status)
}

func TestEquipmentService_AdminCrossesEstablishments(t *testing.T) {
	env := setupEquipmentTestEnv(t)

	eq, err := env.service.CreateEquipment(equipmentPrincipal(), CreateEquipmentInput{
		Name: "Walk-in freezer",
	})
	require.NoError(t, err)

	admin := policy.Principal{
		ID:            2,
		Name:          "Priya",
		Role:          models.RoleAdmin,
		Establishment: "Wolf Lodge",
	}

	maintenance := models.EquipmentStatusMaintenance
	updated, err := env.service.UpdateEquipment(admin, eq.ID, UpdateEquipmentInput{
		Status: &maintenance,
	})
	require.NoError(t, err)
	require.Equal(t, models.EquipmentStatusMaintenance, updated.Status)
}
