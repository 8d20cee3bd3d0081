package storage

import (
	"context"
	"errors"

	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	pkgstorage "github.com/shandysiswandi/esign/internal/pkg/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Storage keeps document files and signer photos in the object store.
type Storage struct {
	client pkgstorage.Storage
	ins    instrument.Instrumentation
}

func NewStorage(client pkgstorage.Storage, ins instrument.Instrumentation) *Storage {
	return &Storage{client: client, ins: ins}
}

func (s *Storage) startSpan(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return s.ins.Tracer("document.outbound.storage").Start(ctx, name, trace.WithAttributes(attribute.String("object.key", key)))
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string) (err error) {
	ctx, span := s.startSpan(ctx, "Put", key)
	defer func() { endSpan(span, err) }()

	_, err = s.client.Put(ctx, key, data, contentType)
	return err
}

// Get maps a missing object to goerror.ErrNotFound.
func (s *Storage) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := s.startSpan(ctx, "Get", key)
	defer func() { endSpan(span, err) }()

	data, err := s.client.Get(ctx, key)
	if errors.Is(err, pkgstorage.ErrObjectNotFound) {
		return nil, goerror.ErrNotFound
	}
	return data, err
}

func (s *Storage) Delete(ctx context.Context, key string) (err error) {
	ctx, span := s.startSpan(ctx, "Delete", key)
	defer func() { endSpan(span, err) }()

	err = s.client.Delete(ctx, key)
	if errors.Is(err, pkgstorage.ErrObjectNotFound) {
		return nil
	}
	return err
}
