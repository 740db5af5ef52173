package tracker

// EventKind names what changed in the ledger.
type EventKind string

const (
	EventTransactionAdded   EventKind = "transaction_added"
	EventTransactionDeleted EventKind = "transaction_deleted"
	EventTransactionsImport EventKind = "transactions_imported"
	EventGoalAdded          EventKind = "goal_added"
	EventGoalFunded         EventKind = "goal_funded"
	EventGoalDeleted        EventKind = "goal_deleted"
	EventProfileUpdated     EventKind = "profile_updated"
	EventRefreshed          EventKind = "refreshed"
)

// Event is delivered to observers after a change has been applied and saved.
// ID is the affected record, empty for profile, import and refresh events.
type Event struct {
	Kind EventKind
	ID   string
}

// Observer is called synchronously, outside the service lock, so it may read
// from the service but should return quickly.
type Observer func(Event)
