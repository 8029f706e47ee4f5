package gameweek

import "context"

// RecordSource loads the full record set for one run.
type RecordSource interface {
	ListPlayerRecords(ctx context.Context) ([]PlayerRecord, error)
}

// RecordSink replaces the stored record set wholesale.
type RecordSink interface {
	ReplacePlayerRecords(ctx context.Context, records []PlayerRecord) error
}

type RecordStore interface {
	RecordSource
	RecordSink
}
