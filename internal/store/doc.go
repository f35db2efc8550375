// Package store defines the persistence interfaces consumed by the
// scheduling and selection services, together with the shared error
// taxonomy and transaction helper.
package store
