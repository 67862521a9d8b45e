package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/postgresengine/internal/adapters"
)

const (
	operationPlaceOrder        = "place_order"
	operationGetOrder          = "get_order"
	operationQueryOrdersByUser = "query_orders_by_user"
	operationDeleteOrders      = "delete_orders_by_user"
)

// PlaceOrder marks the ordered book as sold and stores the order, atomically.
//
// The book is flipped from ACTIVE to INACTIVE with a conditional UPDATE. If that UPDATE
// affects no rows, because the book was sold in the meantime or doesn't exist, the transaction
// is rolled back and store.ErrConcurrencyConflict is returned. No order is stored in that case.
func (s Store) PlaceOrder(ctx context.Context, order store.OrderRecord) error {
	ctx, observer := s.startOperation(ctx, operationPlaceOrder)

	err := s.withinTx(ctx, func(tx adapters.DBTx) error {
		casQuery, casArgs, buildErr := s.toSQL(s.buildMarkBookSold(order.BookID))
		if buildErr != nil {
			return buildErr
		}

		rowsAffected, execErr := s.runExec(ctx, tx, operationPlaceOrder, casQuery, casArgs)
		if execErr != nil {
			return execErr
		}

		if rowsAffected == 0 {
			s.logOperation(logMsgConcurrencyConflict, logAttrBookID, order.BookID.String())
			return store.ErrConcurrencyConflict
		}

		insertQuery, insertArgs, buildErr := s.toSQL(s.buildInsertOrder(order))
		if buildErr != nil {
			return buildErr
		}

		_, execErr = s.runExec(ctx, tx, operationPlaceOrder, insertQuery, insertArgs)

		return execErr
	})

	return observer.finish(err, 1)
}

// GetOrder returns the order with the given ID or store.ErrNotFound.
func (s Store) GetOrder(ctx context.Context, orderID uuid.UUID) (store.OrderRecord, error) {
	ctx, observer := s.startOperation(ctx, operationGetOrder)

	orders, err := s.selectOrders(ctx, operationGetOrder, s.selectOrdersDataset().Where(goqu.C(colID).Eq(orderID.String())))
	if err == nil && len(orders) == 0 {
		err = store.ErrNotFound
	}

	if err != nil {
		return store.OrderRecord{}, observer.finish(err, 0)
	}

	return orders[0], observer.finish(nil, 1)
}

// QueryOrdersByUser returns the orders placed by a user, oldest first, ties broken by ID.
func (s Store) QueryOrdersByUser(ctx context.Context, userID uuid.UUID) (store.OrderRecords, error) {
	ctx, observer := s.startOperation(ctx, operationQueryOrdersByUser)

	ds := s.selectOrdersDataset().
		Where(goqu.C(colUserID).Eq(userID.String())).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc())

	orders, err := s.selectOrders(ctx, operationQueryOrdersByUser, ds)
	if err != nil {
		return nil, observer.finish(err, 0)
	}

	return orders, observer.finish(nil, len(orders))
}

// DeleteOrdersByUser deletes every order placed by a user and returns how many were deleted.
// The ordered books keep their status.
func (s Store) DeleteOrdersByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	ctx, observer := s.startOperation(ctx, operationDeleteOrders)

	del := s.builder().
		Delete(s.table(tableOrders)).
		Where(goqu.C(colUserID).Eq(userID.String())).
		Prepared(true)

	sqlQuery, args, err := s.toSQL(del)
	if err != nil {
		return 0, observer.finish(err, 0)
	}

	rowsAffected, err := s.runExec(ctx, s.db, operationDeleteOrders, sqlQuery, args)
	if err != nil {
		return 0, observer.finish(err, 0)
	}

	return rowsAffected, observer.finish(nil, int(rowsAffected))
}

func (s Store) buildMarkBookSold(bookID uuid.UUID) *goqu.UpdateDataset {
	return s.builder().
		Update(s.table(tableBooks)).
		Set(goqu.Record{colStatus: store.BookStatusInactive}).
		Where(
			goqu.C(colID).Eq(bookID.String()),
			goqu.C(colStatus).Eq(store.BookStatusActive),
		).
		Prepared(true)
}

func (s Store) buildInsertOrder(order store.OrderRecord) *goqu.InsertDataset {
	return s.builder().
		Insert(s.table(tableOrders)).
		Rows(goqu.Record{
			colID:              order.ID.String(),
			colCreatedAt:       order.CreatedAt,
			colBookID:          order.BookID.String(),
			colUserID:          order.UserID.String(),
			colPhoneNumber:     order.PhoneNumber,
			colCountry:         order.Country,
			colDeliveryAddress: order.DeliveryAddress,
		}).
		Prepared(true)
}

func (s Store) selectOrdersDataset() *goqu.SelectDataset {
	return s.builder().
		From(s.table(tableOrders)).
		Select(colID, colCreatedAt, colBookID, colUserID, colPhoneNumber, colCountry, colDeliveryAddress).
		Prepared(true)
}

func (s Store) selectOrders(ctx context.Context, action string, ds *goqu.SelectDataset) (store.OrderRecords, error) {
	sqlQuery, args, err := s.toSQL(ds)
	if err != nil {
		return nil, err
	}

	rows, err := s.runQuery(ctx, s.db, action, sqlQuery, args)
	if err != nil {
		return nil, err
	}

	return scanAll(s, rows, scanOrder)
}

func scanOrder(rows adapters.DBRows) (store.OrderRecord, error) {
	var order store.OrderRecord

	err := rows.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.BookID,
		&order.UserID,
		&order.PhoneNumber,
		&order.Country,
		&order.DeliveryAddress,
	)

	return order, err
}
