// Package queries contains the read side of the ordering service. Queries read projections
// straight from the database and never touch aggregates or emit events.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery asks for the current state of an order by its customer-facing tracking id.
//
// Example:
//
//	trackingID, err := kernel.TrackingIDFromString(c.Param("trackingId"))
//	if err != nil {
//	    return err
//	}
//	query, err := NewTrackOrderQuery(trackingID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type TrackOrderQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewTrackOrderQuery(trackingID kernel.TrackingID) (TrackOrderQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}
	return TrackOrderQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}
