package pgsql

import (
	"context"
	"fmt"

	"github.com/devfx/currency_converter_api/internal/apperrors"
	"github.com/devfx/currency_converter_api/internal/core/domain"
	portsrepo "github.com/devfx/currency_converter_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConversionRepository implements the conversion-history ports using pgxpool.
type PgxConversionRepository struct {
	db *pgxpool.Pool
}

// NewPgxConversionRepository creates a new PgxConversionRepository.
func NewPgxConversionRepository(db *pgxpool.Pool) *PgxConversionRepository {
	return &PgxConversionRepository{db: db}
}

// Ensure PgxConversionRepository implements portsrepo.ConversionRepositoryFacade
var _ portsrepo.ConversionRepositoryFacade = (*PgxConversionRepository)(nil)

// SaveConversion appends a record as a single-row insert and returns the
// stored value with the database-assigned ID.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) (*domain.ConversionRecord, error) {
	query := `
        INSERT INTO conversion_history (
            user_id, from_currency, to_currency,
            original_amount, converted_amount, exchange_rate, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING conversion_id;
    `
	err := r.db.QueryRow(ctx, query,
		record.UserID,
		record.FromCurrency,
		record.ToCurrency,
		record.OriginalAmount,
		record.ConvertedAmount,
		record.Rate,
		record.CreatedAt,
	).Scan(&record.ConversionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to save conversion record", err)
	}
	return &record, nil
}

// FindConversionsByUsername retrieves all records owned by the given username
// in chronological order. The join predicate is what guarantees owner
// isolation; records of other users can never match.
func (r *PgxConversionRepository) FindConversionsByUsername(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	query := `
        SELECT
            ch.conversion_id, ch.user_id, u.username, ch.from_currency, ch.to_currency,
            ch.original_amount, ch.converted_amount, ch.exchange_rate, ch.created_at
        FROM conversion_history ch
        JOIN users u ON u.user_id = ch.user_id
        WHERE u.username = $1
        ORDER BY ch.created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query conversion history", err)
	}
	defer rows.Close()

	records := []domain.ConversionRecord{}
	for rows.Next() {
		var record domain.ConversionRecord
		err := rows.Scan(
			&record.ConversionID,
			&record.UserID,
			&record.Username,
			&record.FromCurrency,
			&record.ToCurrency,
			&record.OriginalAmount,
			&record.ConvertedAmount,
			&record.Rate,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan conversion record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversion history: %w", err)
	}
	return records, nil
}
