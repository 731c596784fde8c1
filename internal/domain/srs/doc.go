// Package srs implements the SM-2 spaced-repetition scheduler.
//
// The core is a pure transition from (repetitions, interval, ease factor, grade)
// to the next three values. Apply wraps it for a card carrying a pending grade,
// ScheduleAll runs Apply over a batch, and DueCards filters a batch by due date.
// Nothing in this package reads the clock, logs, or touches storage: "today" is
// always an explicit argument, so identical inputs give identical outputs.
package srs
