package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gyeh/medload/internal/model"
)

// DefaultBatchSize is the number of insert operations per bulk write.
const DefaultBatchSize = 100

// BulkWriter is satisfied by *mongo.Collection.
type BulkWriter interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

// BatchResult records the outcome of one bulk write.
type BatchResult struct {
	Index     int
	Submitted int
	Inserted  int64
	Failed    int64
	Duration  time.Duration
}

// LoadResult aggregates every batch of a load.
type LoadResult struct {
	Inserted int64
	Failed   int64
	Batches  []BatchResult
	Duration time.Duration
}

// Loader inserts documents in fixed-size unordered batches. A batch with
// some failed inserts is recorded and the load continues; any other error
// stops the load. Batches already written are not rolled back.
type Loader struct {
	sink      BulkWriter
	batchSize int
	timeout   time.Duration
	log       zerolog.Logger
}

// NewLoader returns a Loader. batchSize <= 0 means DefaultBatchSize; timeout
// <= 0 means no per-batch deadline beyond the client default.
func NewLoader(sink BulkWriter, batchSize int, timeout time.Duration, log zerolog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{sink: sink, batchSize: batchSize, timeout: timeout, log: log}
}

// Load writes docs in row order and returns the summed per-batch counts.
// On a fatal error the returned LoadResult still reflects batches already written.
func (l *Loader) Load(ctx context.Context, docs []model.Document) (*LoadResult, error) {
	start := time.Now()
	res := &LoadResult{}

	for i, batch := range chunk(docs, l.batchSize) {
		br, err := l.writeBatch(ctx, i, batch)
		if err != nil {
			res.Duration = time.Since(start)
			return res, err
		}
		res.Batches = append(res.Batches, br)
		res.Inserted += br.Inserted
		res.Failed += br.Failed
	}

	res.Duration = time.Since(start)
	l.log.Info().
		Int64("inserted", res.Inserted).
		Int64("failed", res.Failed).
		Int("batches", len(res.Batches)).
		Str("duration", res.Duration.String()).
		Float64("docs_per_sec", float64(res.Inserted)/res.Duration.Seconds()).
		Msg("load complete")
	return res, nil
}

func (l *Loader) writeBatch(ctx context.Context, index int, batch []model.Document) (BatchResult, error) {
	start := time.Now()
	models := make([]mongo.WriteModel, len(batch))
	for i := range batch {
		models[i] = mongo.NewInsertOneModel().SetDocument(batch[i])
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	out, err := l.sink.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	br := BatchResult{Index: index, Submitted: len(batch), Duration: time.Since(start)}

	if err != nil {
		var bwe mongo.BulkWriteException
		if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
			return br, &ConnectivityError{Op: "bulk write", Err: err}
		}
		if out != nil {
			br.Inserted = out.InsertedCount
		} else {
			br.Inserted = int64(len(batch) - len(bwe.WriteErrors))
		}
		br.Failed = int64(len(batch)) - br.Inserted
		l.log.Warn().
			Int("batch", index).
			Int("submitted", len(batch)).
			Int64("inserted", br.Inserted).
			Int("write_errors", len(bwe.WriteErrors)).
			Str("first_error", bwe.WriteErrors[0].Message).
			Msg("partial batch failure")
		return br, nil
	}

	if out != nil {
		br.Inserted = out.InsertedCount
	}
	br.Failed = int64(len(batch)) - br.Inserted
	l.log.Debug().
		Int("batch", index).
		Int64("inserted", br.Inserted).
		Dur("duration", br.Duration).
		Msg("batch written")
	return br, nil
}

// chunk splits items into consecutive slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for size < len(items) {
		items, batches = items[size:], append(batches, items[:size:size])
	}
	return append(batches, items)
}
