package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/thriftly/checkout-service/internal/entities"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfirmer struct {
	confirmed []string
	err       error
}

func (f *fakeConfirmer) ConfirmPayment(_ context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.confirmed = append(f.confirmed, sessionID)
	return nil
}

func newTestKafkaHandler(confirmer PaymentConfirmer) *kafkaHandler {
	return &kafkaHandler{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate:  validator.New(),
		confirmer: confirmer,
	}
}

func TestKafkaHandler_HandlePaymentEvent(t *testing.T) {
	testCases := []struct {
		name          string
		value         string
		wantErr       bool
		wantConfirmed []string
	}{
		{
			name:          "paid session confirms",
			value:         `{"type":"checkout.session.completed","session_id":"cs_1","payment_status":"paid"}`,
			wantConfirmed: []string{"cs_1"},
		},
		{
			name:  "missing payment status does not confirm",
			value: `{"type":"checkout.session.completed","session_id":"cs_1"}`,
		},
		{
			name:  "unpaid session skipped",
			value: `{"type":"checkout.session.completed","session_id":"cs_1","payment_status":"unpaid"}`,
		},
		{
			name:  "other event type skipped",
			value: `{"type":"checkout.session.expired","session_id":"cs_1","payment_status":"paid"}`,
		},
		{
			name:    "missing session id is invalid",
			value:   `{"type":"checkout.session.completed","payment_status":"paid"}`,
			wantErr: true,
		},
		{
			name:    "broken json",
			value:   `{`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			confirmer := &fakeConfirmer{}
			h := newTestKafkaHandler(confirmer)

			err := h.handlePaymentEvent(context.Background(), kafka.Message{Value: []byte(tc.value)})
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantConfirmed, confirmer.confirmed)
		})
	}

	t.Run("unknown session becomes an error", func(t *testing.T) {
		confirmer := &fakeConfirmer{err: entities.ErrSessionNotFound}
		h := newTestKafkaHandler(confirmer)

		err := h.handlePaymentEvent(context.Background(), kafka.Message{
			Value: []byte(`{"type":"checkout.session.completed","session_id":"cs_gone","payment_status":"paid"}`),
		})
		assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	})
}
