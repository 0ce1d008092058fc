package postgres

import (
	"context"
	"regexp"
	"testing"

	"storefront/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var (
	decrementStockSQL = regexp.QuoteMeta(`UPDATE "products" SET "stock"=stock - $1,"updated_at"=$2 WHERE id = $3 AND is_active = $4 AND stock >= $5`)
	productExistsSQL  = regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE id = $1`)
)

func TestProductRepository_DecrementStock(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		expect  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "guarded update succeeds",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decrementStockSQL).
					WithArgs(int64(3), sqlmock.AnyArg(), id.String(), true, int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "product missing",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decrementStockSQL).
					WithArgs(int64(3), sqlmock.AnyArg(), id.String(), true, int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(productExistsSQL).
					WithArgs(id.String()).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			wantErr: repository.ErrProductNotFound,
		},
		{
			name: "stock below quantity",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decrementStockSQL).
					WithArgs(int64(3), sqlmock.AnyArg(), id.String(), true, int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(productExistsSQL).
					WithArgs(id.String()).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			},
			wantErr: repository.ErrInsufficientStock,
		},
		{
			name: "check constraint",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decrementStockSQL).
					WithArgs(int64(3), sqlmock.AnyArg(), id.String(), true, int64(3)).
					WillReturnError(&pgconn.PgError{Code: pgCheckViolation})
			},
			wantErr: repository.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.expect(mock)

			err := NewProductRepository(db).DecrementStock(context.Background(), id, 3)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
