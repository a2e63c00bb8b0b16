// Package assignment models the Driver Assignment Ledger entry: which driver is
// actively delivering which order.
//
// An assignment moves through
//
//	Assigned ─> Accepted ─> PickedUp ─> InTransit ─> Delivered
//
// and may be Cancelled from any non-terminal state. Delivered and Cancelled
// assignments no longer count against the driver's capacity.
package assignment
