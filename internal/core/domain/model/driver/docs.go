// Package driver provides the Driver aggregate: a delivery driver, the vehicle
// that bounds how many deliveries the driver can carry at once, and the
// idle/busy availability flag shown to dispatchers.
//
// Drivers are registered by the HR flow of the wider application; the dispatch
// service only reads them and flips their availability.
package driver
