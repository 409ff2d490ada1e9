package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"newpack/internal/database"
	"newpack/internal/models"
	"newpack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, repo repositories.UserRepository, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, FullName: name + " Embalagens", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func createAddress(t *testing.T, repo repositories.AddressRepository, userID string) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:  userID,
		CEP:     "13270000",
		Street:  "Rua Um",
		Number:  10,
		City:    "Valinhos",
		State:   "SP",
		Freight: models.FreightCIF,
		Active:  true,
	}
	require.NoError(t, repo.Create(context.Background(), address))
	return address
}

func createProduct(t *testing.T, repo repositories.ProductRepository, name, category string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Type:        models.ProductTypeRoll,
		Category:    category,
		Description: name,
		UnitValue:   decimal.RequireFromString("2.50"),
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func createOrder(t *testing.T, repo repositories.OrderRepository, clientID string, number int, date time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ClientID:    clientID,
		OrderDate:   date,
		Status:      "Em produção",
		Installment: 1,
		OrderNumber: number,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func createDetail(t *testing.T, repo repositories.OrderDetailRepository, orderID string, productID uint) *models.OrderDetail {
	t.Helper()
	detail := &models.OrderDetail{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  1,
		FullPrice: decimal.RequireFromString("2.50"),
	}
	require.NoError(t, repo.Create(context.Background(), detail))
	return detail
}

func TestUserRepository(t *testing.T) {
	db := openDB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	acme := createUser(t, repo, "acme")
	createUser(t, repo, "beta")

	t.Run("find by login ignores case", func(t *testing.T) {
		user, err := repo.FindByLogin(ctx, "ACME")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, user.ID)

		user, err = repo.FindByLogin(ctx, "Acme EMBALAGENS")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, user.ID)

		_, err = repo.FindByLogin(ctx, "gamma")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("name taken", func(t *testing.T) {
		taken, err := repo.NameTaken(ctx, "BETA", "", "")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.NameTaken(ctx, "", "beta embalagens", "")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.NameTaken(ctx, "acme", "Acme Embalagens", acme.ID)
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = repo.NameTaken(ctx, "", "", "")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("list filters", func(t *testing.T) {
		users, err := repo.List(ctx, repositories.UserFilter{Name: "CM"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "acme", users[0].Name)

		users, err = repo.List(ctx, repositories.UserFilter{})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("update unknown user", func(t *testing.T) {
		err := repo.Update(ctx, uuid.NewString(), map[string]interface{}{"name": "x"})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("lock by id", func(t *testing.T) {
		user, err := repo.LockByID(ctx, acme.ID)
		require.NoError(t, err)
		assert.Equal(t, "acme", user.Name)

		_, err = repo.LockByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserDeleteCascades(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	addresses := repositories.NewGORMAddressRepository(db)
	products := repositories.NewGORMProductRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	details := repositories.NewGORMOrderDetailRepository(db)
	tokens := repositories.NewGORMRefreshTokenRepository(db)

	client := createUser(t, users, "acme")
	other := createUser(t, users, "beta")
	createAddress(t, addresses, client.ID)
	createAddress(t, addresses, other.ID)
	product := createProduct(t, products, "Cliche", "cliches")
	order := createOrder(t, orders, client.ID, 1, time.Now())
	createDetail(t, details, order.ID, product.ID)
	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{UserID: client.ID, ExpiresIn: time.Now().Add(time.Hour).Unix()}))

	require.NoError(t, users.Delete(ctx, client.ID))

	for _, model := range []interface{}{&models.Address{}, &models.Order{}, &models.OrderDetail{}, &models.RefreshToken{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		if _, ok := model.(*models.Address); ok {
			assert.Equal(t, int64(1), count, "other user's address must survive")
			continue
		}
		assert.Zero(t, count)
	}

	_, err := products.GetByID(ctx, product.ID)
	assert.NoError(t, err)

	err = users.Delete(ctx, client.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAddressActiveIndex(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMAddressRepository(db)

	client := createUser(t, users, "acme")
	first := createAddress(t, repo, client.ID)

	second := &models.Address{
		UserID: client.ID, CEP: "01310100", Street: "Av. Paulista", Number: 1000,
		City: "São Paulo", State: "SP", Freight: models.FreightFOB, Active: true,
	}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicate(err))

	require.NoError(t, repo.Update(ctx, first.ID, map[string]interface{}{"active": false}))
	require.NoError(t, repo.Create(ctx, second))

	count, err := repo.CountOtherActive(ctx, client.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountOtherActive(ctx, client.ID, second.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.DeactivateOthers(ctx, client.ID, first.ID))
	require.NoError(t, repo.Update(ctx, first.ID, map[string]interface{}{"active": true}))

	reloaded, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Active)

	latest, err := repo.LatestByUser(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	user, err := users.GetWithAddresses(ctx, client.ID, true)
	require.NoError(t, err)
	require.Len(t, user.Addresses, 1)
	assert.Equal(t, first.ID, user.Addresses[0].ID)

	user, err = users.GetWithAddresses(ctx, client.ID, false)
	require.NoError(t, err)
	require.Len(t, user.Addresses, 2)
	assert.True(t, user.Addresses[0].Active)

	_, err = repo.LatestByUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderNumbersAndLineItems(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	products := repositories.NewGORMProductRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	details := repositories.NewGORMOrderDetailRepository(db)

	client := createUser(t, users, "acme")
	other := createUser(t, users, "beta")
	cliche := createProduct(t, products, "Cliche", "cliches")
	knife := createProduct(t, products, "Faca plana", "facas_planas")

	last, err := orders.LastOrderNumber(ctx, client.ID)
	require.NoError(t, err)
	assert.Zero(t, last)

	now := time.Now().UTC()
	first := createOrder(t, orders, client.ID, 1, now.Add(-time.Hour))
	second := createOrder(t, orders, client.ID, 2, now)
	createOrder(t, orders, other.ID, 1, now)

	last, err = orders.LastOrderNumber(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, last)

	err = orders.Create(ctx, &models.Order{ClientID: client.ID, OrderDate: now, Status: "Novo", Installment: 1, OrderNumber: 2})
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicate(err))

	line := createDetail(t, details, first.ID, cliche.ID)
	createDetail(t, details, first.ID, knife.ID)
	createDetail(t, details, second.ID, cliche.ID)

	err = details.Create(ctx, &models.OrderDetail{OrderID: first.ID, ProductID: cliche.ID, Quantity: 2, FullPrice: decimal.NewFromInt(5)})
	require.Error(t, err)
	assert.True(t, repositories.IsDuplicate(err))

	exists, err := details.PairExists(ctx, first.ID, cliche.ID, "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = details.PairExists(ctx, first.ID, cliche.ID, line.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	purchased, err := details.ListByClient(ctx, client.ID, repositories.PurchaseFilter{})
	require.NoError(t, err)
	require.Len(t, purchased, 3)
	assert.Equal(t, second.ID, purchased[0].OrderID)
	require.NotNil(t, purchased[0].Product)
	assert.Equal(t, "Cliche", purchased[0].Product.Name)

	purchased, err = details.ListByClient(ctx, client.ID, repositories.PurchaseFilter{Category: "facas_planas"})
	require.NoError(t, err)
	require.Len(t, purchased, 1)
	assert.Equal(t, knife.ID, purchased[0].ProductID)

	full, err := orders.GetFull(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, full.Details, 2)
	require.NotNil(t, full.Client)
	assert.Equal(t, "acme", full.Client.Name)

	listed, err := orders.List(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)

	require.NoError(t, orders.Delete(ctx, first.ID))
	_, err = details.GetByID(ctx, line.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductListing(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	products := repositories.NewGORMProductRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	details := repositories.NewGORMOrderDetailRepository(db)

	house := createUser(t, users, "house")
	quiet := createProduct(t, products, "Cliche 1", "cliches")
	popular := createProduct(t, products, "Cliche 2", "cliches")
	knife := createProduct(t, products, "Faca plana", "facas_planas")

	first := createOrder(t, orders, house.ID, 1, time.Now())
	second := createOrder(t, orders, house.ID, 2, time.Now())
	createDetail(t, details, first.ID, popular.ID)
	createDetail(t, details, second.ID, popular.ID)
	createDetail(t, details, first.ID, knife.ID)

	names := func(list []models.Product) []string {
		out := make([]string, 0, len(list))
		for _, p := range list {
			out = append(out, p.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		filter repositories.ProductFilter
		want   []string
		total  int64
	}{
		{
			name:   "best sellers first",
			filter: repositories.ProductFilter{Limit: 10},
			want:   []string{"Cliche 2", "Faca plana", "Cliche 1"},
			total:  3,
		},
		{
			name:   "category",
			filter: repositories.ProductFilter{Categories: []string{"cliches"}, Limit: 10},
			want:   []string{"Cliche 2", "Cliche 1"},
			total:  2,
		},
		{
			name:   "search terms are or-ed",
			filter: repositories.ProductFilter{Search: []string{"FACA", "cliche 1"}, Limit: 10},
			want:   []string{"Faca plana", "Cliche 1"},
			total:  2,
		},
		{
			name:   "page",
			filter: repositories.ProductFilter{Offset: 1, Limit: 1},
			want:   []string{"Faca plana"},
			total:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := products.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(list))
			assert.Equal(t, tt.total, total)
		})
	}

	ordered, err := products.OrderedBy(ctx, house.ID, []uint{quiet.ID, popular.ID, knife.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{popular.ID: true, knife.ID: true}, ordered)

	ordered, err = products.OrderedBy(ctx, "", []uint{popular.ID})
	require.NoError(t, err)
	assert.Empty(t, ordered)

	require.NoError(t, products.Delete(ctx, popular.ID))
	var count int64
	require.NoError(t, db.Model(&models.OrderDetail{}).Where("product_id = ?", popular.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductImageDistinctURLs(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	products := repositories.NewGORMProductRepository(db)
	images := repositories.NewGORMProductImageRepository(db)

	product := createProduct(t, products, "Cliche", "cliches")
	for _, url := range []string{"https://img.test/a.png", "https://img.test/a.png", "https://img.test/b.png"} {
		require.NoError(t, images.Create(ctx, &models.ProductImage{ProductID: product.ID, ImageURL: url}))
	}

	all, err := images.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unique, err := images.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, unique, 2)
	assert.Equal(t, "https://img.test/a.png", unique[0].ImageURL)
	assert.Equal(t, "https://img.test/b.png", unique[1].ImageURL)
}

func TestRefreshTokenSingleUse(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMRefreshTokenRepository(db)

	user := createUser(t, users, "acme")
	token := &models.RefreshToken{UserID: user.ID, ExpiresIn: time.Now().Add(time.Hour).Unix()}
	require.NoError(t, repo.Create(ctx, token))

	stored, err := repo.GetByID(ctx, token.ID)
	require.NoError(t, err)
	assert.False(t, stored.Expired(time.Now()))

	require.NoError(t, repo.Delete(ctx, token.ID))
	assert.ErrorIs(t, repo.Delete(ctx, token.ID), repositories.ErrNotFound)

	_, err = repo.GetByID(ctx, token.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRunInTx(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	txManager := repositories.NewGORMTransactionManager(db)

	boom := errors.New("boom")
	var created string
	err := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		user := &models.User{Name: "acme", FullName: "Acme", Password: "hash"}
		if err := users.Create(txCtx, user); err != nil {
			return err
		}
		created = user.ID
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, err = users.GetByID(ctx, created)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = txManager.RunInTx(ctx, func(txCtx context.Context) error {
		user := &models.User{Name: "beta", FullName: "Beta", Password: "hash"}
		if err := users.Create(txCtx, user); err != nil {
			return err
		}
		created = user.ID
		return txManager.RunInTx(txCtx, func(inner context.Context) error {
			_, err := users.LockByID(inner, created)
			return err
		})
	})
	require.NoError(t, err)
	_, err = users.GetByID(ctx, created)
	assert.NoError(t, err)
}

func TestSearchTermsMatchLiterally(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	products := repositories.NewGORMProductRepository(db)

	createUser(t, users, "acme")
	createUser(t, users, "beta_box")
	createProduct(t, products, "Cliche 10% off", "cliches")
	createProduct(t, products, "Cliche 100", "cliches")

	list, total, err := products.List(ctx, repositories.ProductFilter{Search: []string{"10%"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Cliche 10% off", list[0].Name)

	_, total, err = products.List(ctx, repositories.ProductFilter{Search: []string{"_"}, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	found, err := users.List(ctx, repositories.UserFilter{Name: "%"})
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = users.List(ctx, repositories.UserFilter{Name: "cm_"})
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = users.List(ctx, repositories.UserFilter{Name: "A_BOX"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "beta_box", found[0].Name)
}
