// Package services holds domain services for work that spans several
// aggregates.
//
// The package includes:
//   - MaxActiveOrders: the capacity policy, a pure function of vehicle type and settings
//   - Dispatcher: validates and applies one order-to-driver dispatch in memory
//
// Persistence, locking and transactions stay with the application layer; the
// services only decide and mutate aggregates.
package services
