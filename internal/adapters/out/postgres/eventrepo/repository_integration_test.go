package eventrepo_test

import (
	"context"
	"testing"
	"time"

	"ordermanager/internal/adapters/out/postgres/eventrepo"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type EventRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *eventrepo.GormEventRepository
}

func (suite *EventRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&eventrepo.EventDTO{}))
}

func (suite *EventRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_events").Error)
	suite.repository = eventrepo.NewGormEventRepository(suite.db)
}

func (suite *EventRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *EventRepositoryIntegrationTestSuite) TestAppendAndReadInOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

	created := order.NewEventRecord(orderID, order.EventOrderCreated, order.StatePending, order.StatePending,
		kernel.Metadata{"action": "order_created", "amount": 15.0}, at)
	// Same timestamp: the insertion order decides.
	moved := order.NewEventRecord(orderID, order.EventNoVerificationNeeded, order.StatePending, order.StatePendingPayment,
		kernel.Metadata{"rules_applied": []string{"small_order_no_verification"}}, at)
	foreign := order.NewEventRecord(kernel.NewUUID(), order.EventOrderCreated, order.StatePending, order.StatePending, nil, at)

	suite.Require().NoError(suite.repository.Append(ctx, created))
	suite.Require().NoError(suite.repository.Append(ctx, moved))
	suite.Require().NoError(suite.repository.Append(ctx, foreign))

	records, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(records, 2)

	suite.Equal(created.ID, records[0].ID)
	suite.Equal(order.EventOrderCreated, records[0].Event)
	suite.Equal("order_created", records[0].Metadata["action"])
	suite.Equal(moved.ID, records[1].ID)
	suite.Equal(order.StatePendingPayment, records[1].NewState)
	suite.Equal([]any{"small_order_no_verification"}, records[1].Metadata["rules_applied"])
	suite.True(at.Equal(records[1].CreatedAt))
}

func (suite *EventRepositoryIntegrationTestSuite) TestUnknownOrderHasNoHistory() {
	records, err := suite.repository.GetByOrderID(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(records)
}

func TestEventRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(EventRepositoryIntegrationTestSuite))
}
