package restaurantrepo_test

import (
	"context"
	"testing"

	"foodorder/internal/adapters/out/postgres/pgtest"
	"foodorder/internal/adapters/out/postgres/restaurantrepo"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/restaurant"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type RestaurantRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *restaurantrepo.GormRestaurantRepository
}

func (suite *RestaurantRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = restaurantrepo.NewGormRestaurantRepository(database.DB)
}

func (suite *RestaurantRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *RestaurantRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *RestaurantRepositoryIntegrationTestSuite) TestGet() {
	ctx := context.Background()
	fee, _ := kernel.MoneyFromString("3.49")
	minimum, _ := kernel.MoneyFromString("12.00")
	r := restaurant.Restaurant{
		ID:           kernel.NewUUID(),
		Name:         "Taco Stand",
		Phone:        "555-0100",
		Address:      "9 Market St",
		DeliveryFee:  fee,
		MinimumOrder: minimum,
		IsActive:     true,
	}
	suite.Require().NoError(suite.repository.Add(ctx, r))

	loaded, err := suite.repository.Get(ctx, r.ID)

	suite.Require().NoError(err)
	suite.Equal(r.Name, loaded.Name)
	suite.Equal(r.Phone, loaded.Phone)
	suite.Equal("3.49", loaded.DeliveryFee.String())
	suite.Equal("12.00", loaded.MinimumOrder.String())
	suite.True(loaded.IsActive)
}

func (suite *RestaurantRepositoryIntegrationTestSuite) TestGetMenuItem() {
	ctx := context.Background()
	r := restaurant.Restaurant{ID: kernel.NewUUID(), Name: "Taco Stand", IsActive: true}
	suite.Require().NoError(suite.repository.Add(ctx, r))
	price, _ := kernel.MoneyFromString("4.25")
	item := restaurant.MenuItem{
		ID:           kernel.NewUUID(),
		RestaurantID: r.ID,
		Name:         "Al Pastor",
		Price:        price,
		IsAvailable:  true,
	}
	suite.Require().NoError(suite.repository.AddMenuItem(ctx, item))

	loaded, err := suite.repository.GetMenuItem(ctx, item.ID)

	suite.Require().NoError(err)
	suite.True(loaded.RestaurantID.IsEqual(r.ID))
	suite.Equal("4.25", loaded.Price.String())
}

func (suite *RestaurantRepositoryIntegrationTestSuite) TestNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetMenuItem(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestRestaurantRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(RestaurantRepositoryIntegrationTestSuite))
}
