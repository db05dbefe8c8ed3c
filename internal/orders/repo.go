package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists Order aggregates in Postgres. Orders and their
// book_details rows are written and deleted as one unit.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Save(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(customer_name, address, total_amount)
		VALUES ($1, $2, $3)
		RETURNING id`,
		o.CustomerName, o.Address, o.TotalAmount).Scan(&o.ID)
	if err != nil {
		return err
	}

	for i := range o.BookDetails {
		d := &o.BookDetails[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO book_details(order_id, book_id, ordered_quantity)
			VALUES ($1, $2, $3)
			RETURNING fid`,
			o.ID, d.BookID, d.OrderedQuantity).Scan(&d.FID)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) FindByID(ctx context.Context, id int) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_name, address, total_amount
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerName, &o.Address, &o.TotalAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT fid, book_id, ordered_quantity
		FROM book_details WHERE order_id=$1 ORDER BY fid`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d BookDetail
		if err := rows.Scan(&d.FID, &d.BookID, &d.OrderedQuantity); err != nil {
			return nil, err
		}
		o.BookDetails = append(o.BookDetails, d)
	}
	return &o, rows.Err()
}

func (r *Repo) FindAll(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, customer_name, address, total_amount
		FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	index := map[int]int{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Address, &o.TotalAmount); err != nil {
			return nil, err
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	drows, err := r.DB.Query(ctx, `
		SELECT order_id, fid, book_id, ordered_quantity
		FROM book_details ORDER BY order_id, fid`)
	if err != nil {
		return nil, err
	}
	defer drows.Close()

	for drows.Next() {
		var orderID int
		var d BookDetail
		if err := drows.Scan(&orderID, &d.FID, &d.BookID, &d.OrderedQuantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			out[i].BookDetails = append(out[i].BookDetails, d)
		}
	}
	return out, drows.Err()
}

func (r *Repo) DeleteByID(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM book_details WHERE order_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
