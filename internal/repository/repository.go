package repository

import (
	"github.com/figu920/flowops/internal/models"
)

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Establishment *string
	Status        *models.UserStatus
	Roles         []models.Role
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users matching the filter
	List(filter UserFilter) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// InventoryFilter holds filtering options for listing inventory items
type InventoryFilter struct {
	Establishment  *string
	CategoryPrefix *string
	Status         *models.InventoryStatus
}

// InventoryRepository defines the interface for inventory data access
type InventoryRepository interface {
	Create(item *models.InventoryItem) error
	FindByID(id uint64) (*models.InventoryItem, error)

	// List returns items ordered by name ascending
	List(filter InventoryFilter) ([]models.InventoryItem, error)

	Update(item *models.InventoryItem) error

	// Delete is idempotent; deleting a missing id is not an error
	Delete(id uint64) error
}

// EquipmentRepository defines the interface for equipment data access
type EquipmentRepository interface {
	Create(eq *models.Equipment) error
	FindByID(id uint64) (*models.Equipment, error)
	List(establishment *string) ([]models.Equipment, error)
	Update(eq *models.Equipment) error
	Delete(id uint64) error
}

// ChecklistFilter holds filtering options for listing checklist items
type ChecklistFilter struct {
	Establishment *string
	ListType      *models.ChecklistType
}

// ChecklistRepository defines the interface for checklist data access
type ChecklistRepository interface {
	Create(item *models.ChecklistItem) error
	FindByID(id uint64) (*models.ChecklistItem, error)
	List(filter ChecklistFilter) ([]models.ChecklistItem, error)
	Update(item *models.ChecklistItem) error
	Delete(id uint64) error
}

// WeeklyTaskRepository defines the interface for weekly task data access
type WeeklyTaskRepository interface {
	Create(task *models.WeeklyTask) error
	FindByID(id uint64) (*models.WeeklyTask, error)
	List(establishment *string) ([]models.WeeklyTask, error)
	Update(task *models.WeeklyTask) error
	Delete(id uint64) error

	// AddCompletion appends a completion row and marks the task completed
	// in one transaction.
	AddCompletion(task *models.WeeklyTask, completion *models.TaskCompletion) error

	// ListCompletions returns a task's completion history, newest first
	ListCompletions(taskID uint64) ([]models.TaskCompletion, error)
}

// MenuRepository defines the interface for menu item and recipe data access
type MenuRepository interface {
	Create(item *models.MenuItem) error

	// FindByID loads a menu item with its ingredients
	FindByID(id uint64) (*models.MenuItem, error)

	List(establishment *string) ([]models.MenuItem, error)
	AddIngredient(ing *models.Ingredient) error
	ListIngredients(menuItemID uint64) ([]models.Ingredient, error)
}

// SaleRepository records sales and applies recipe deductions
type SaleRepository interface {
	// RecordSale inserts the sale and atomically decrements every linked
	// inventory item in the same transaction. It returns the recipe rows
	// whose linked inventory item no longer exists (deduction skipped).
	RecordSale(sale *models.Sale) ([]models.Ingredient, error)

	// List returns sales, newest first
	List(establishment *string) ([]models.Sale, error)
}

// TimelineRepository is the append-only audit log store
type TimelineRepository interface {
	// Append inserts an event; events are never updated or deleted
	Append(event *models.TimelineEvent) error

	// List returns a page of events, newest first
	List(establishment *string, limit, offset int) ([]models.TimelineEvent, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(n *models.Notification) error

	// ListByRecipient returns a user's notifications, newest first
	ListByRecipient(recipientID uint64) ([]models.Notification, error)

	FindByID(id uint64) (*models.Notification, error)
	MarkRead(id uint64) error
}

// ChatRepository defines the interface for chat message data access
type ChatRepository interface {
	Create(msg *models.ChatMessage) error

	// List returns messages in insertion order
	List(establishment *string) ([]models.ChatMessage, error)
}
