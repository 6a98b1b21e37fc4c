// Package parcel contains the Parcel aggregate and its lifecycle.
//
// A parcel is created in PickupQueue with a "Pickup Request Created" event,
// moved to Warehouse on intake and then driven through Loading, InTransit and
// DeliveryAttempt by the dispatch engine and the shipment ledger until it ends
// Delivered, Returned, Missing or Cancelled. Every status change goes through
// UpdateStatus, which appends exactly one tracking event.
//
// Record is the flat, persisted shape used by the record file and database
// adapters; RestoreParcel turns it back into a Parcel with the status forced.
package parcel
