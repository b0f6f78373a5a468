package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dekorshop/dekorshop/internal/catalog/app"
	"github.com/dekorshop/dekorshop/internal/catalog/domain"
)

const productColumns = `id, name, description, price, image_url, category, stock, rating,
	width, height, depth, material, color, created_at, updated_at`

type ProductRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db, now: time.Now}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	// Timestamps are stored at second precision.
	p.CreatedAt = r.now().UTC().Truncate(time.Second)
	p.UpdatedAt = p.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock, p.Rating,
		p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Depth, p.Material, p.Color,
		p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.UpdatedAt = r.now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, image_url = ?,
		 category = ?, stock = ?, rating = ?, width = ?, height = ?, depth = ?,
		 material = ?, color = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock, p.Rating,
		p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Depth, p.Material, p.Color,
		p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY created_at DESC`,
		category)
}

func (r *ProductRepo) ListSorted(ctx context.Context, column string, desc bool) ([]domain.Product, error) {
	// column is chosen by the service from a closed set, never by callers.
	switch column {
	case "price", "rating":
	default:
		return nil, fmt.Errorf("unsupported sort column %q", column)
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY `+column+` `+dir)
}

func (r *ProductRepo) Featured(ctx context.Context, minRating float64, limit int) ([]domain.Product, error) {
	return r.query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE rating >= ? AND stock > 0
		 ORDER BY rating DESC LIMIT ?`,
		minRating, limit)
}

func (r *ProductRepo) Search(ctx context.Context, term string) ([]domain.Product, error) {
	return r.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE name LIKE ? ESCAPE '\' ORDER BY name ASC`,
		"%"+escapeLike(term)+"%")
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var createdAt, updatedAt int64

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock,
		&p.Rating, &p.Dimensions.Width, &p.Dimensions.Height, &p.Dimensions.Depth,
		&p.Material, &p.Color, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return p, nil
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
