package snapshot

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("snapshot-blobstore")

// TracingBlobStore wraps a BlobStore with a span per call.
type TracingBlobStore struct {
	next    BlobStore
	backend string
}

func NewTracingBlobStore(next BlobStore, backend string) *TracingBlobStore {
	return &TracingBlobStore{next: next, backend: backend}
}

func (s *TracingBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "blobstore.Get",
		trace.WithAttributes(
			attribute.String("snapshot.backend", s.backend),
			attribute.String("snapshot.key", key),
		),
	)
	defer span.End()

	v, err := s.next.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Bool("snapshot.found", false))
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("snapshot.found", true),
		attribute.Int("snapshot.bytes", len(v)),
	)
	return v, nil
}

func (s *TracingBlobStore) Put(ctx context.Context, key string, value []byte) error {
	ctx, span := tracer.Start(ctx, "blobstore.Put",
		trace.WithAttributes(
			attribute.String("snapshot.backend", s.backend),
			attribute.String("snapshot.key", key),
			attribute.Int("snapshot.bytes", len(value)),
		),
	)
	defer span.End()

	if err := s.next.Put(ctx, key, value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
