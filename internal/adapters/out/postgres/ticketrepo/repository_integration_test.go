package ticketrepo_test

import (
	"context"
	"testing"
	"time"

	"ordermanager/internal/adapters/out/postgres/ticketrepo"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TicketRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *ticketrepo.GormTicketRepository
	now        time.Time
}

func (suite *TicketRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&ticketrepo.TicketDTO{}))
}

func (suite *TicketRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE support_tickets").Error)
	suite.repository = ticketrepo.NewGormTicketRepository(suite.db)
	suite.now = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
}

func (suite *TicketRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TicketRepositoryIntegrationTestSuite) add(orderID kernel.UUID, amount float64, at time.Time) *ticket.Ticket {
	t, err := ticket.NewTicket(kernel.NewUUID(), orderID, "High amount payment failure", amount,
		kernel.Metadata{"priority": "medium", "auto_created": true}, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), t))
	return t
}

func (suite *TicketRepositoryIntegrationTestSuite) TestAddAndGet() {
	orderID := kernel.NewUUID()
	t := suite.add(orderID, 1500, suite.now)

	got, err := suite.repository.Get(context.Background(), t.ID())
	suite.Require().NoError(err)
	suite.Equal(t.ID(), got.ID())
	suite.Equal(orderID, got.OrderID())
	suite.Equal(ticket.StatusOpen, got.Status())
	suite.InDelta(1500.0, got.Amount(), 0.001)
	suite.Equal(true, got.Metadata()["auto_created"])
	suite.True(suite.now.Equal(got.CreatedAt()))
}

func (suite *TicketRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	t := suite.add(kernel.NewUUID(), 1500, suite.now)

	later := suite.now.Add(time.Hour)
	suite.Require().NoError(t.UpdateStatus(ticket.StatusInProgress, kernel.Metadata{"agent": "alice"}, later))
	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(ticket.StatusInProgress, got.Status())
	suite.Equal("open", got.Metadata()[ticket.MetaPreviousStatus])
	suite.Equal("alice", got.Metadata()["agent"])
	suite.True(later.Equal(got.UpdatedAt()))
}

func (suite *TicketRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	t, err := ticket.NewTicket(kernel.NewUUID(), kernel.NewUUID(), "reason", 10, nil, suite.now)
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.repository.Update(context.Background(), t), errs.ErrObjectNotFound)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestListings() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	first := suite.add(orderID, 1000, suite.now)
	second := suite.add(orderID, 3000, suite.now.Add(time.Minute))
	other := suite.add(kernel.NewUUID(), 2000, suite.now.Add(2*time.Minute))

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(other.ID(), all[0].ID())

	mine, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 2)
	suite.Equal(second.ID(), mine[0].ID())
	suite.Equal(first.ID(), mine[1].ID())
}

func (suite *TicketRepositoryIntegrationTestSuite) TestStatsByStatus() {
	ctx := context.Background()
	suite.add(kernel.NewUUID(), 1000, suite.now)
	suite.add(kernel.NewUUID(), 3000, suite.now)
	resolved := suite.add(kernel.NewUUID(), 500, suite.now)
	suite.Require().NoError(resolved.UpdateStatus(ticket.StatusResolved, nil, suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, resolved))

	stats, err := suite.repository.StatsByStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(stats, 2)
	suite.Equal(ticket.StatusOpen, stats[0].Status)
	suite.Equal(int64(2), stats[0].Count)
	suite.InDelta(2000.0, stats[0].AvgAmount, 0.001)
	suite.Equal(ticket.StatusResolved, stats[1].Status)
	suite.InDelta(500.0, stats[1].AvgAmount, 0.001)
}

func TestTicketRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TicketRepositoryIntegrationTestSuite))
}
