package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/resto_api/internal/database"
	"github.com/GTDGit/resto_api/internal/models"
	"github.com/GTDGit/resto_api/internal/schedule"
	"github.com/GTDGit/resto_api/internal/utils"
)

// promotionSelect aggregates the linked product ids of each promotion.
const promotionSelect = `
        SELECT
            p.id,
            p.description,
            p.promo_price,
            p.active_days,
            to_char(p.start_time, 'HH24:MI') AS start_time,
            to_char(p.end_time, 'HH24:MI') AS end_time,
            COALESCE(
                array_agg(pp.product_id ORDER BY pp.product_id) FILTER (WHERE pp.product_id IS NOT NULL),
                '{}'
            ) AS product_ids,
            p.created_at,
            p.updated_at
        FROM promotions p
        LEFT JOIN product_promotions pp ON pp.promotion_id = p.id`

// promotionRow is the raw shape of promotionSelect.
type promotionRow struct {
	ID          int64           `db:"id"`
	Description string          `db:"description"`
	PromoPrice  decimal.Decimal `db:"promo_price"`
	ActiveDays  string          `db:"active_days"`
	StartTime   string          `db:"start_time"`
	EndTime     string          `db:"end_time"`
	ProductIDs  pq.Int64Array   `db:"product_ids"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (row promotionRow) toModel() models.Promotion {
	days, err := schedule.DecodeDaySet(row.ActiveDays)
	ids := []int64(row.ProductIDs)
	if ids == nil {
		ids = []int64{}
	}
	return models.Promotion{
		ID:          row.ID,
		Description: row.Description,
		PromoPrice:  row.PromoPrice,
		Days:        days,
		DaysErr:     err,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		ProductIDs:  ids,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// PromotionRepository handles data access for promotions and their product links.
type PromotionRepository struct {
	db *sqlx.DB
}

// NewPromotionRepository creates a new PromotionRepository.
func NewPromotionRepository(db *sqlx.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create inserts the promotion and its product links in one transaction.
// Either both are committed or neither is.
func (r *PromotionRepository) Create(ctx context.Context, p *models.Promotion, productIDs []int64) (int64, error) {
	const q = `
        INSERT INTO promotions (description, promo_price, active_days, start_time, end_time)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, q,
			p.Description,
			p.PromoPrice,
			p.Days.Encode(),
			p.StartTime,
			p.EndTime,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert promotion: %w", err)
		}
		return insertLinks(ctx, tx, p.ID, productIDs)
	})
	if err != nil {
		return 0, classify(err)
	}
	p.ProductIDs = append([]int64{}, productIDs...)
	return p.ID, nil
}

// FindAll returns every promotion in id order with its linked product ids.
func (r *PromotionRepository) FindAll(ctx context.Context) ([]models.Promotion, error) {
	q := promotionSelect + `
        GROUP BY p.id
        ORDER BY p.id ASC`

	var rows []promotionRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("select promotions: %w", err)
	}

	promotions := make([]models.Promotion, 0, len(rows))
	for _, row := range rows {
		promotions = append(promotions, row.toModel())
	}
	return promotions, nil
}

// FindByID returns a promotion, or nil when it does not exist.
func (r *PromotionRepository) FindByID(ctx context.Context, id int64) (*models.Promotion, error) {
	q := promotionSelect + `
        WHERE p.id = $1
        GROUP BY p.id`

	var row promotionRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select promotion %d: %w", id, err)
	}
	p := row.toModel()
	return &p, nil
}

// Update applies the non-nil fields of patch in one transaction. A non-nil
// ProductIDs replaces the link set. It reports false when no promotion has id.
func (r *PromotionRepository) Update(ctx context.Context, id int64, patch models.PromotionPatch) (bool, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.PromoPrice != nil {
		add("promo_price", *patch.PromoPrice)
	}
	if patch.Days != nil {
		add("active_days", patch.Days.Encode())
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		add("end_time", *patch.EndTime)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE promotions SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	var found bool
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("update promotion %d: %w", id, err)
		}
		if found, err = affected(res); err != nil || !found {
			return err
		}
		if patch.ProductIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_promotions WHERE promotion_id = $1`, id); err != nil {
			return fmt.Errorf("clear links of promotion %d: %w", id, err)
		}
		return insertLinks(ctx, tx, id, *patch.ProductIDs)
	})
	if err != nil {
		return false, classify(err)
	}
	return found, nil
}

// Delete removes a promotion. Its product links go with it (ON DELETE CASCADE).
func (r *PromotionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete promotion %d: %w", id, err)
	}
	return affected(res)
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, promotionID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	const q = `
        INSERT INTO product_promotions (product_id, promotion_id)
        SELECT unnest($1::bigint[]), $2::bigint`

	if _, err := tx.ExecContext(ctx, q, pq.Array(productIDs), promotionID); err != nil {
		return fmt.Errorf("insert links of promotion %d: %w", promotionID, err)
	}
	return nil
}

// classify marks foreign key violations on product links as a caller error.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return fmt.Errorf("%w: %w", utils.ErrLinkedProduct, err)
	}
	return err
}
