package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// setupMockDB wires gorm's postgres dialect to a sqlmock connection so
// tests can assert the SQL the repositories emit
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormProductOrderRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormProductOrderRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "product_orders" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), id)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormParticipantRepository_UpdateStatusForOrder_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormParticipantRepository(db)

	orderID := uuid.New()
	mock.ExpectExec(`UPDATE "participants" SET "status"=\$1,"updated_at"=\$2 WHERE order_id = \$3 AND status = \$4`).
		WithArgs(int(order.ParticipantToBePaid), sqlmock.AnyArg(), orderID, int(order.ParticipantApproved)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.UpdateStatusForOrder(context.Background(), orderID,
		order.ParticipantApproved, order.ParticipantToBePaid)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
