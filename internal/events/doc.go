// Package events provides types and interfaces for publishing what the
// scheduler did.
//
// Callers of the scheduling engine emit a CardScheduledEvent every time a grade
// is applied to a card. Handlers can log, count or forward these events without
// the review service or the daily job knowing about them.
//
// The primary components are:
// - CardScheduledEvent: The outcome of applying one grade to one card
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
