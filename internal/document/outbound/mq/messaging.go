package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/esign/internal/document/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/messaging"
	"github.com/shandysiswandi/esign/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

// PublishDocumentRegistered keys the message by document so consumers that
// partition see one document in order.
func (m *Messaging) PublishDocumentRegistered(ctx context.Context, msg usecase.DocumentRegisteredEvent) error {
	ctx, span := m.ins.Tracer("document.outbound.mq").Start(ctx, "PublishDocumentRegistered")
	defer span.End()

	body, err := json.Marshal(event.DocumentRegisteredMessage{
		DocumentID:    msg.DocumentID,
		CompanyID:     msg.CompanyID,
		SignerID:      msg.SignerID,
		SignerCreated: msg.SignerCreated,
		HashSHA256:    msg.HashSHA256,
		RegisteredBy:  msg.RegisteredBy,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if _, err := m.client.Publish(ctx, event.DocumentRegisteredDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(msg.DocumentID, 10)),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
