// Package order contains the Order aggregate and its lifecycle state
// machine. An order is created once in Pending status and from then on is
// mutated exclusively through the guarded transition methods of the
// aggregate; the allowed-edge table in status.go is the single source of
// truth for which lifecycle moves exist. Orders are never deleted;
// Completed and Cancelled are terminal.
package order
