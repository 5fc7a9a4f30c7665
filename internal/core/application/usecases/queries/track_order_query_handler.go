package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when no order has the requested tracking id. It also matches
// errs.ErrObjectNotFound.
var ErrOrderNotFound = errors.New("order not found")

// TrackOrderQueryResponse is the customer-facing view of an order.
type TrackOrderQueryResponse struct {
	OrderTrackingID string
	OrderStatus     order.Status
	FailureMessages []string
}

// TrackOrderQueryHandler reads the order projection by tracking id.
//
// Example:
//
//	handler := NewTrackOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, queries.ErrOrderNotFound) {
//	    return echo.NewHTTPError(http.StatusNotFound)
//	}
//	fmt.Println(resp.OrderStatus) // PAID
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			status,
			failure_messages
		FROM orders
		WHERE tracking_id = ?
	`, query.TrackingID().Raw()).Rows()
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return TrackOrderQueryResponse{}, err
		}
		return TrackOrderQueryResponse{}, fmt.Errorf("%w: %w", ErrOrderNotFound,
			errs.NewObjectNotFoundError("trackingId", query.TrackingID().String()))
	}

	var (
		trackingID      string
		status          string
		failureMessages []byte
	)
	if err := rows.Scan(&trackingID, &status, &failureMessages); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	resp := TrackOrderQueryResponse{
		OrderTrackingID: query.TrackingID().String(),
		FailureMessages: []string{},
	}

	resp.OrderStatus, err = order.ParseStatus(status)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	if len(failureMessages) > 0 {
		var messages []string
		if err := json.Unmarshal(failureMessages, &messages); err != nil {
			return TrackOrderQueryResponse{}, fmt.Errorf("failure messages of order %s: %w", trackingID, err)
		}
		if messages != nil {
			resp.FailureMessages = messages
		}
	}

	return resp, nil
}
