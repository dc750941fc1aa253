// Package services contains stateless domain services.
//
// Domain services hold logic that spans aggregates or, like the
// NotificationRouter, turns one aggregate's output into input for another.
// They keep no state of their own and perform no I/O.
package services
