// Package deck holds flashcards in memory for the review service and the
// daily scheduling job, and reads and writes the JSON deck files the CLI
// works with. It is a stand-in for whatever storage the surrounding system
// uses; it has no notion of transactions.
package deck
