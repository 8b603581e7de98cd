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

type userServiceTestEnv struct {
	db      *gorm.DB
	service *UserService
}

func setupUserServiceTestEnv(t *testing.T) userServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TimelineEvent{},
		&models.Notification{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	timelineRepo := repository.NewTimelineRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	service := NewUserService(userRepo, timelineRepo, notificationRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return userServiceTestEnv{db: db, service: service}
}

func (env userServiceTestEnv) createUser(t *testing.T, username string, role models.Role, status models.UserStatus, establishment string) *models.User {
	t.Helper()
	user := &models.User{
		Name:          username,
		Email:         username + "@flowops.test",
		Username:      username,
		PasswordHash:  "hashedpassword",
		Role:          role,
		Status:        status,
		Establishment: establishment,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestUserService_Approve(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	lead := env.createUser(t, "lead", models.RoleLead, models.UserStatusActive, "Bison Den")
	pending := env.createUser(t, "applicant", models.RoleEmployee, models.UserStatusPending, "Bison Den")

	approved, err := env.service.Approve(policy.FromUser(lead), pending.ID, models.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusActive, approved.Status)
	require.Equal(t, models.RoleEmployee, approved.Role)

	var event models.TimelineEvent
	require.NoError(t, env.db.First(&event).Error)
	require.Equal(t, "Approved applicant as employee", event.Text)
	require.Equal(t, models.TimelineTypeSuccess, event.Type)
	require.Equal(t, "Bison Den", event.Establishment)

	var notification models.Notification
	require.NoError(t, env.db.First(&notification).Error)
	require.Equal(t, pending.ID, notification.RecipientID)
	require.Equal(t, "account_approved", notification.Type)
}

func TestUserService_Approve_RoleOutsideHierarchy(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	lead := env.createUser(t, "lead", models.RoleLead, models.UserStatusActive, "Bison Den")
	pendingLead := env.createUser(t, "applicant", models.RoleLead, models.UserStatusPending, "Bison Den")

	_, err := env.service.Approve(policy.FromUser(lead), pendingLead.ID, models.RoleLead)
	require.ErrorIs(t, err, ErrApprovalNotAllowed)
}

func TestUserService_Approve_CrossEstablishment(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	lead := env.createUser(t, "lead", models.RoleLead, models.UserStatusActive, "Bison Den")
	pending := env.createUser(t, "applicant", models.RoleEmployee, models.UserStatusPending, "Wolf Lodge")

	_, err := env.service.Approve(policy.FromUser(lead), pending.ID, models.RoleEmployee)
	require.ErrorIs(t, err, ErrWrongEstablishment)
}

func TestUserService_Approve_SystemAdminCrossesEstablishments(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	sysadmin := env.createUser(t, "root", models.RoleLead, models.UserStatusActive, "Bison Den")
	sysadmin.IsSystemAdmin = true
	require.NoError(t, env.db.Save(sysadmin).Error)

	pending := env.createUser(t, "applicant", models.RoleEmployee, models.UserStatusPending, "Wolf Lodge")

	approved, err := env.service.Approve(policy.FromUser(sysadmin), pending.ID, models.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusActive, approved.Status)
}

func TestUserService_Reject_IsTerminal(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	lead := env.createUser(t, "lead", models.RoleLead, models.UserStatusActive, "Bison Den")
	pending := env.createUser(t, "applicant", models.RoleEmployee, models.UserStatusPending, "Bison Den")

	rejected, err := env.service.Reject(policy.FromUser(lead), pending.ID)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusRemoved, rejected.Status)

	// Removed is terminal; a later approval attempt must fail.
	_, err = env.service.Approve(policy.FromUser(lead), pending.ID, models.RoleEmployee)
	require.ErrorIs(t, err, ErrUserNotPending)
}

func TestUserService_Deactivate(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	manager := env.createUser(t, "manager", models.RoleManager, models.UserStatusActive, "Bison Den")
	lead := env.createUser(t, "lead", models.RoleLead, models.UserStatusActive, "Bison Den")
	employee := env.createUser(t, "employee", models.RoleEmployee, models.UserStatusActive, "Bison Den")

	_, err := env.service.Deactivate(policy.FromUser(lead), employee.ID)
	require.ErrorIs(t, err, ErrNotAllowedToManage)

	removed, err := env.service.Deactivate(policy.FromUser(manager), employee.ID)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusRemoved, removed.Status)

	_, err = env.service.Deactivate(policy.FromUser(manager), employee.ID)
	require.ErrorIs(t, err, ErrUserNotActive)
}

func TestUserService_ListUsers_PendingFilteredByHierarchy(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	lead := env.createUser(t, "lead", models.RoleLead, models.UserStatusActive, "Bison Den")
	env.createUser(t, "pending-employee", models.RoleEmployee, models.UserStatusPending, "Bison Den")
	env.createUser(t, "pending-lead", models.RoleLead, models.UserStatusPending, "Bison Den")
	env.createUser(t, "pending-elsewhere", models.RoleEmployee, models.UserStatusPending, "Wolf Lodge")

	pending := models.UserStatusPending
	users, err := env.service.ListUsers(policy.FromUser(lead), &pending)
	require.NoError(t, err)

	// A lead only sees pending employees in their own establishment.
	require.Len(t, users, 1)
	require.Equal(t, "pending-employee", users[0].Username)
}

func TestUserService_ListUsers_PendingEmployeeSeesNone(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	employee := env.createUser(t, "employee", models.RoleEmployee, models.UserStatusActive, "Bison Den")
	env.createUser(t, "pending", models.RoleEmployee, models.UserStatusPending, "Bison Den")

	pending := models.UserStatusPending
	users, err := env.service.ListUsers(policy.FromUser(employee), &pending)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestUserService_CreateUser(t *testing.T) {
	env := setupUserServiceTestEnv(t)

	manager := env.createUser(t, "manager", models.RoleManager, models.UserStatusActive, "Bison Den")
	employee := env.createUser(t, "employee", models.RoleEmployee, models.UserStatusActive, "Bison Den")

	_, err := env.service.CreateUser(policy.FromUser(employee), CreateUserInput{
		Name:     "Direct",
		Email:    "direct@flowops.test",
		Username: "direct",
		Password: "supersecret",
		Role:     models.RoleLead,
	})
	require.ErrorIs(t, err, ErrNotAllowedToManage)

	user, err := env.service.CreateUser(policy.FromUser(manager), CreateUserInput{
		Name:     "Direct",
		Email:    "direct@flowops.test",
		Username: "direct",
		Password: "supersecret",
		Role:     models.RoleLead,
	})
	require.NoError(t, err)
	require.Equal(t, models.UserStatusActive, user.Status)
	require.Equal(t, models.RoleLead, user.Role)
	require.Equal(t, "Bison Den", user.Establishment)
}
