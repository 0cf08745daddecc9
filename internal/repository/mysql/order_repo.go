package mysql

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/model"
	"storefront/internal/repository"
)

const orderColumns = "id, user_id, product_id, quantity, total_price, created_at, updated_at"

// OrderRepo persists orders and order_items.  Every mutation runs inside
// one transaction so an order row can never exist without its matching
// stock adjustment: the stock check and decrement are a single
// conditional UPDATE, not a read followed by a write.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

func scanOrder(row rowScanner, o *model.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
}

// adjustStockTx subtracts delta from the product's stock, refusing to go
// negative.  A negative delta restores stock and always matches.  It
// returns ErrInsufficientStock when the guard rejects the update.
func adjustStockTx(ctx context.Context, tx *sql.Tx, productID uint64, delta int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = stock - ?, updated_at = NOW() WHERE id = ? AND stock >= ?",
		delta, productID, delta)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrInsufficientStock
	}
	return nil
}

// Create places an order: lock the product row for its current price,
// conditionally decrement stock, then insert the order and its line
// item.  Rolls back on any failure, so a stock decrement can never be
// left behind by a failed insert or vice versa.
func (r *OrderRepo) Create(ctx context.Context, userID, productID uint64, quantity int64) (*model.Order, *model.OrderItem, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var price int64
	err = tx.QueryRowContext(ctx,
		"SELECT price FROM products WHERE id=? FOR UPDATE", productID).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	if err := adjustStockTx(ctx, tx, productID, quantity); err != nil {
		return nil, nil, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, product_id, quantity, total_price) VALUES (?,?,?,?)",
		userID, productID, quantity, price*quantity)
	if err != nil {
		return nil, nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	var o model.Order
	if err := scanOrder(tx.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id=?", orderID), &o); err != nil {
		return nil, nil, err
	}

	itemRes, err := tx.ExecContext(ctx,
		"INSERT INTO order_items (order_id, product_id, quantity) VALUES (?,?,?)",
		o.ID, productID, quantity)
	if err != nil {
		return nil, nil, err
	}
	itemID, err := itemRes.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	item := model.OrderItem{ID: uint64(itemID), OrderID: o.ID, ProductID: productID, Quantity: quantity}
	return &o, &item, nil
}

// DetailByID returns the order joined with its product and user.  Left
// joins keep the order visible when the product or user has since been
// removed; the snapshots come back nil instead.
func (r *OrderRepo) DetailByID(ctx context.Context, id uint64) (*model.OrderDetail, error) {
	const q = `SELECT o.id, o.user_id, o.product_id, o.quantity, o.total_price, o.created_at, o.updated_at,
                      p.id, p.name, p.description, p.category_id, p.price, p.stock, p.created_at, p.updated_at,
                      u.id, u.username, u.email, u.role
               FROM orders o
               LEFT JOIN products p ON p.id = o.product_id
               LEFT JOIN users u    ON u.id = o.user_id
               WHERE o.id = ?`
	var det model.OrderDetail
	var (
		pID                sql.NullInt64
		pName, pDesc       sql.NullString
		pCatID             sql.NullInt64
		pPrice, pStock     sql.NullInt64
		pCreated, pUpdated sql.NullTime
		uID                sql.NullInt64
		uName, uMail, uRole sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.UserID, &det.ProductID, &det.Quantity, &det.TotalPrice, &det.CreatedAt, &det.UpdatedAt,
		&pID, &pName, &pDesc, &pCatID, &pPrice, &pStock, &pCreated, &pUpdated,
		&uID, &uName, &uMail, &uRole,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if pID.Valid {
		p := model.Product{
			ID:        uint64(pID.Int64),
			Name:      pName.String,
			Price:     pPrice.Int64,
			Stock:     pStock.Int64,
			CreatedAt: pCreated.Time,
			UpdatedAt: pUpdated.Time,
		}
		if pDesc.Valid {
			p.Description = pDesc.String
		}
		if pCatID.Valid {
			cid := uint64(pCatID.Int64)
			p.CategoryID = &cid
		}
		det.Product = &p
	}
	if uID.Valid {
		det.User = &model.UserBrief{
			ID:       uint64(uID.Int64),
			Username: uName.String,
			Email:    uMail.String,
			Role:     model.Role(uRole.String),
		}
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id=? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		det.Items = append(det.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &det, nil
}

// ListByUserID returns all of a user's orders with product snapshots.
func (r *OrderRepo) ListByUserID(ctx context.Context, userID uint64) ([]model.OrderDetail, error) {
	const q = `SELECT o.id, o.user_id, o.product_id, o.quantity, o.total_price, o.created_at, o.updated_at,
                      p.id, p.name, p.description, p.category_id, p.price, p.stock, p.created_at, p.updated_at
               FROM orders o
               LEFT JOIN products p ON p.id = o.product_id
               WHERE o.user_id = ?
               ORDER BY o.id ASC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.OrderDetail{}
	for rows.Next() {
		var det model.OrderDetail
		var (
			pID                sql.NullInt64
			pName, pDesc       sql.NullString
			pCatID             sql.NullInt64
			pPrice, pStock     sql.NullInt64
			pCreated, pUpdated sql.NullTime
		)
		if err := rows.Scan(
			&det.ID, &det.UserID, &det.ProductID, &det.Quantity, &det.TotalPrice, &det.CreatedAt, &det.UpdatedAt,
			&pID, &pName, &pDesc, &pCatID, &pPrice, &pStock, &pCreated, &pUpdated,
		); err != nil {
			return nil, err
		}
		if pID.Valid {
			p := model.Product{
				ID:        uint64(pID.Int64),
				Name:      pName.String,
				Price:     pPrice.Int64,
				Stock:     pStock.Int64,
				CreatedAt: pCreated.Time,
				UpdatedAt: pUpdated.Time,
			}
			if pDesc.Valid {
				p.Description = pDesc.String
			}
			if pCatID.Valid {
				cid := uint64(pCatID.Int64)
				p.CategoryID = &cid
			}
			det.Product = &p
		}
		out = append(out, det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update recomputes the order against the (possibly new) product's
// current price and adjusts that product's stock by the quantity delta.
// A lowered quantity restores stock; a raised one passes through the
// same conditional guard as Create.
func (r *OrderRepo) Update(ctx context.Context, id uint64, upd repository.OrderUpdate) (*model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var existing model.Order
	err = scanOrder(tx.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id=? FOR UPDATE", id), &existing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	productID := existing.ProductID
	if upd.ProductID != nil {
		productID = *upd.ProductID
	}
	quantity := existing.Quantity
	if upd.Quantity != nil {
		quantity = *upd.Quantity
	}

	var price int64
	err = tx.QueryRowContext(ctx,
		"SELECT price FROM products WHERE id=? FOR UPDATE", productID).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if delta := quantity - existing.Quantity; delta != 0 {
		if err := adjustStockTx(ctx, tx, productID, delta); err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE orders SET product_id=?, quantity=?, total_price=?, updated_at=NOW() WHERE id=?",
		productID, quantity, price*quantity, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE order_items SET product_id=?, quantity=? WHERE order_id=?",
		productID, quantity, id); err != nil {
		return nil, err
	}

	var updated model.Order
	if err := scanOrder(tx.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id=?", id), &updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel restores the product's stock by the order's quantity, removes
// the line items and the order row, and returns the deleted record.  The
// stock restore is skipped silently when the product no longer exists,
// mirroring the left-join read semantics.
func (r *OrderRepo) Cancel(ctx context.Context, id uint64) (*model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var o model.Order
	err = scanOrder(tx.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id=? FOR UPDATE", id), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = stock + ?, updated_at = NOW() WHERE id = ?",
		o.Quantity, o.ProductID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id=?", id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id=?", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &o, nil
}
