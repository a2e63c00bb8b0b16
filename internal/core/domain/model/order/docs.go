// Package order provides the Order aggregate of the dispatch domain.
//
// The package includes:
//   - Order: the aggregate root holding status, shipping metadata and line items
//   - Status: the order state machine; the only place where (from, to) pairs are decided
//   - LineItem: a product variant and the quantity ordered
//
// Key business rules:
//   - Orders start in Pending and move forward through Confirmed, Processing and Shipped
//   - InTransit is reached only by dispatching the order to a driver
//   - Delivered is reached only when the driver assignment is delivered
//   - A cancelled dispatch returns the order from InTransit to Shipped
//   - Delivered and Cancelled are terminal
package order
