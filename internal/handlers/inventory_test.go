package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/constants"
	"github.com/figu920/flowops/internal/database"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
	"github.com/figu920/flowops/internal/services"
)

// InventoryHandlerTestSuite defines the test suite for InventoryHandler
type InventoryHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *InventoryHandler
	router  *gin.Engine
}

// SetupTest runs before each test
func (suite *InventoryHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.InventoryItem{},
		&models.TimelineEvent{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	inventoryRepo := repository.NewInventoryRepository(suite.db)
	timelineRepo := repository.NewTimelineRepository(suite.db)
	suite.handler = NewInventoryHandler(services.NewInventoryService(inventoryRepo, timelineRepo))

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
}

// TearDownTest runs after each test
func (suite *InventoryHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *InventoryHandlerTestSuite) createTestItem(name, establishment string) *models.InventoryItem {
	item := &models.InventoryItem{
		Name:          name,
		Quantity:      decimal.NewFromInt(10),
		Status:        models.InventoryStatusOK,
		Establishment: establishment,
	}
	suite.db.Create(item)
	return item
}

// Helper function to create an authenticated context
func (suite *InventoryHandlerTestSuite) createAuthContext(method, url string, body []byte, p policy.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyPrincipal, p)

	return c, w
}

func bisonDenEmployee() policy.Principal {
	return policy.Principal{
		ID:            1,
		Name:          "Dana",
		Role:          models.RoleEmployee,
		Establishment: "Bison Den",
	}
}

func (suite *InventoryHandlerTestSuite) TestCreateItem() {
	body, _ := json.Marshal(map[string]interface{}{
		"name":     "Ground Beef",
		"category": "meat/beef",
		"quantity": "50",
		"unit":     "kg",
	})

	c, w := suite.createAuthContext(http.MethodPost, "/api/inventory", body, bisonDenEmployee())
	suite.handler.CreateItem(c)

	suite.Equal(http.StatusCreated, w.Code)

	var item models.InventoryItem
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &item))
	suite.Equal("Ground Beef", item.Name)
	suite.Equal("Bison Den", item.Establishment)
	suite.Equal("Dana", item.UpdatedBy)

	var event models.TimelineEvent
	suite.Require().NoError(suite.db.First(&event).Error)
	suite.Equal("Added new item: Ground Beef", event.Text)
	suite.Equal(models.TimelineTypeInfo, event.Type)
}

func (suite *InventoryHandlerTestSuite) TestUpdateItemMarkedLow() {
	item := suite.createTestItem("Buns", "Bison Den")

	body, _ := json.Marshal(map[string]interface{}{
		"status":      "LOW",
		"low_comment": "Order more before Friday",
	})

	c, w := suite.createAuthContext(http.MethodPatch, "/api/inventory/1", body, bisonDenEmployee())
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateItem(c)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.InventoryItem
	suite.Require().NoError(suite.db.First(&updated, item.ID).Error)
	suite.Equal(models.InventoryStatusLow, updated.Status)
	suite.Equal("Order more before Friday", updated.LowComment)

	var event models.TimelineEvent
	suite.Require().NoError(suite.db.First(&event).Error)
	suite.Equal("Buns marked LOW", event.Text)
	suite.Equal(models.TimelineTypeWarning, event.Type)
	suite.Equal("Order more before Friday", event.Comment)
}

func (suite *InventoryHandlerTestSuite) TestUpdateItemLeavingLowClearsComment() {
	item := suite.createTestItem("Buns", "Bison Den")
	item.Status = models.InventoryStatusLow
	item.LowComment = "Running short"
	suite.db.Save(item)

	body, _ := json.Marshal(map[string]interface{}{"status": "OK"})

	c, w := suite.createAuthContext(http.MethodPatch, "/api/inventory/1", body, bisonDenEmployee())
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateItem(c)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.InventoryItem
	suite.Require().NoError(suite.db.First(&updated, item.ID).Error)
	suite.Equal(models.InventoryStatusOK, updated.Status)
	suite.Empty(updated.LowComment)
}

func (suite *InventoryHandlerTestSuite) TestUpdateItemMarkedOutCarriesComment() {
	item := suite.createTestItem("Buns", "Bison Den")
	item.Status = models.InventoryStatusLow
	item.LowComment = "Down to one bag"
	suite.db.Save(item)

	body, _ := json.Marshal(map[string]interface{}{"status": "OUT"})

	c, w := suite.createAuthContext(http.MethodPatch, "/api/inventory/1", body, bisonDenEmployee())
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateItem(c)

	suite.Equal(http.StatusOK, w.Code)

	// The alert keeps the operator's note even though the item itself
	// drops it once it is no longer LOW.
	var event models.TimelineEvent
	suite.Require().NoError(suite.db.First(&event).Error)
	suite.Equal("Buns marked OUT", event.Text)
	suite.Equal(models.TimelineTypeAlert, event.Type)
	suite.Equal("Down to one bag", event.Comment)

	var updated models.InventoryItem
	suite.Require().NoError(suite.db.First(&updated, item.ID).Error)
	suite.Empty(updated.LowComment)
}

func (suite *InventoryHandlerTestSuite) TestUpdateItemOtherEstablishmentForbidden() {
	item := suite.createTestItem("Beef", "Bison Den")

	outsider := policy.Principal{
		ID:            7,
		Name:          "Quinn",
		Role:          models.RoleEmployee,
		Establishment: "Wolf Lodge",
	}

	body, _ := json.Marshal(map[string]interface{}{"quantity": "0"})

	c, w := suite.createAuthContext(http.MethodPatch, "/api/inventory/1", body, outsider)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateItem(c)

	suite.Equal(http.StatusForbidden, w.Code)

	var unchanged models.InventoryItem
	suite.Require().NoError(suite.db.First(&unchanged, item.ID).Error)
	suite.True(unchanged.Quantity.Equal(decimal.NewFromInt(10)))
}

func (suite *InventoryHandlerTestSuite) TestDeleteItemOtherEstablishmentForbidden() {
	item := suite.createTestItem("Beef", "Bison Den")

	outsider := policy.Principal{
		ID:            7,
		Name:          "Quinn",
		Role:          models.RoleEmployee,
		Establishment: "Wolf Lodge",
	}

	c, w := suite.createAuthContext(http.MethodDelete, "/api/inventory/1", nil, outsider)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteItem(c)

	suite.Equal(http.StatusForbidden, w.Code)

	var still models.InventoryItem
	suite.Require().NoError(suite.db.First(&still, item.ID).Error)
}

func (suite *InventoryHandlerTestSuite) TestUpdateItemAdminCrossesEstablishments() {
	item := suite.createTestItem("Beef", "Bison Den")

	admin := policy.Principal{
		ID:            2,
		Name:          "Priya",
		Role:          models.RoleAdmin,
		Establishment: "Wolf Lodge",
	}

	body, _ := json.Marshal(map[string]interface{}{"quantity": "25"})

	c, w := suite.createAuthContext(http.MethodPatch, "/api/inventory/1", body, admin)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateItem(c)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.InventoryItem
	suite.Require().NoError(suite.db.First(&updated, item.ID).Error)
	suite.True(updated.Quantity.Equal(decimal.NewFromInt(25)))
}

func (suite *InventoryHandlerTestSuite) TestListItemsFencedByEstablishment() {
	suite.createTestItem("Beef", "Bison Den")
	suite.createTestItem("Elk", "Wolf Lodge")

	c, w := suite.createAuthContext(http.MethodGet, "/api/inventory", nil, bisonDenEmployee())
	suite.handler.ListItems(c)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Items []models.InventoryItem `json:"items"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Items, 1)
	suite.Equal("Beef", response.Items[0].Name)
}

func (suite *InventoryHandlerTestSuite) TestListItemsAdminSeesAllEstablishments() {
	suite.createTestItem("Beef", "Bison Den")
	suite.createTestItem("Elk", "Wolf Lodge")

	admin := bisonDenEmployee()
	admin.Role = models.RoleAdmin

	c, w := suite.createAuthContext(http.MethodGet, "/api/inventory", nil, admin)
	suite.handler.ListItems(c)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Items []models.InventoryItem `json:"items"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Items, 2)
}

func (suite *InventoryHandlerTestSuite) TestDeleteItemIdempotent() {
	suite.createTestItem("Butter", "Bison Den")

	for i := 0; i < 2; i++ {
		c, w := suite.createAuthContext(http.MethodDelete, "/api/inventory/1", nil, bisonDenEmployee())
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		suite.handler.DeleteItem(c)
		c.Writer.WriteHeaderNow()
		suite.Equal(http.StatusNoContent, w.Code)
	}
}

func TestInventoryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerTestSuite))
}
