// Package domain defines the core domain models for snotify.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling: window identity, the pending
// activation record the event-loop binding carries, and the structured
// error taxonomy shared by the transport and service layers.
package domain
