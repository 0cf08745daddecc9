package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"
)

const productColumns = "id, name, description, category_id, price, stock, created_at, updated_at"

// ProductRepo persists products in the 'products' table.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanProduct(row rowScanner, p *model.Product) error {
	var desc sql.NullString
	var catID sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &desc, &catID, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if desc.Valid {
		p.Description = desc.String
	}
	if catID.Valid {
		cid := uint64(catID.Int64)
		p.CategoryID = &cid
	}
	return nil
}

// Create inserts a product and populates its ID and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	var desc any
	if p.Description != "" {
		desc = p.Description
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name, description, category_id, price, stock) VALUES (?,?,?,?,?)",
		p.Name, desc, p.CategoryID, p.Price, p.Stock)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.FindByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

// FindByID fetches a product by id.
func (r *ProductRepo) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	err := scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the non-nil fields and returns the updated row.
func (r *ProductRepo) Update(ctx context.Context, id uint64, upd repository.ProductUpdate) (*model.Product, error) {
	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *upd.Description)
	}
	if upd.CategoryID != nil {
		sets = append(sets, "category_id=?")
		args = append(args, *upd.CategoryID)
	}
	if upd.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *upd.Price)
	}
	if upd.Stock != nil {
		sets = append(sets, "stock=?")
		args = append(args, *upd.Stock)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at=NOW()")
		args = append(args, id)
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a product and returns the deleted record.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id); err != nil {
		return nil, err
	}
	return p, nil
}

// Search runs a filtered, paginated catalog query.  Filters combine with
// AND; unset filters are omitted entirely rather than turned into
// always-true conditions.
func (r *ProductRepo) Search(ctx context.Context, q repository.SearchQuery) ([]model.Product, error) {
	where := []string{}
	args := []any{}

	if q.Query != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Query)+"%")
	}
	if q.CategoryID != nil {
		where = append(where, "category_id = ?")
		args = append(args, *q.CategoryID)
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE "+cond+" ORDER BY id ASC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Product, 0, limit)
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
