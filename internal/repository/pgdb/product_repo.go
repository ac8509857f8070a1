package pgdb

import (
	"context"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/tr"
	"github.com/jimlawless/whereami"
)

const productColumns = `
	pr.id, pr.name, pr.description, pr.price, pr.category_id, cat.name,
	pr.image_url, pr.is_new, pr.stock_quantity, pr.created_at, pr.updated_at, pr.is_archived`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool DB
	conv converter.ProductConverter
}

func NewProductRepo(pool DB, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создаёт или обновляет товар по уникальному имени.
// Вызывается только внутри транзакции.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (name, description, price, category_id, is_new, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name)
		DO UPDATE SET
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category_id = EXCLUDED.category_id,
			is_new = EXCLUDED.is_new,
			stock_quantity = EXCLUDED.stock_quantity,
			is_archived = false,
			updated_at = NOW()
		RETURNING id, name, description, price, category_id, image_url, is_new,
			stock_quantity, created_at, updated_at, is_archived;
	`

	var out converter.ProductModel
	err = tx.QueryRow(ctx, query,
		model.Name, model.Description, model.Price, model.CategoryID, model.IsNew, model.StockQuantity,
	).Scan(
		&out.ID, &out.Name, &out.Description, &out.Price, &out.CategoryID, &out.ImageURL, &out.IsNew,
		&out.StockQuantity, &out.CreatedAt, &out.UpdatedAt, &out.IsArchived,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&out), nil
}

func (p *ProductRepo) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	q := tr.QuerierFromCtx(ctx, p.pool)

	tag, err := q.Exec(ctx, `UPDATE products SET image_url = $1, updated_at = NOW() WHERE id = $2`, imageURL, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// GetByID возвращает активный товар вместе с названием категории.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	query := `
		SELECT` + productColumns + `
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = $1 AND NOT pr.is_archived AND NOT cat.is_archived
	`

	var m converter.ProductModel
	if err := scanProduct(q.QueryRow(ctx, query, id), &m); err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&m), nil
}

// GetActive возвращает снимок всех активных товаров в порядке добавления.
func (p *ProductRepo) GetActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE NOT pr.is_archived AND NOT cat.is_archived
		ORDER BY pr.id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var m converter.ProductModel
		if err := scanProduct(rows, &m); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) Archive(ctx context.Context, id int64) error {
	q := tr.QuerierFromCtx(ctx, p.pool)

	tag, err := q.Exec(ctx, `UPDATE products SET is_archived = true, updated_at = NOW() WHERE id = $1 AND NOT is_archived`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, m *converter.ProductModel) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.CategoryID, &m.CategoryName,
		&m.ImageURL, &m.IsNew, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt, &m.IsArchived,
	)
}
