package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tabibi/patient-api/internal/email"
	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/pkg/logger"
	"github.com/tabibi/patient-api/pkg/messaging"
	"github.com/tabibi/patient-api/pkg/worker"
)

// Notifier consumes appointment lifecycle events from the broker and turns
// them into patient emails.
type Notifier struct {
	broker   messaging.Broker
	emailSvc email.Service
	logger   *logger.Logger
}

func NewNotifier(broker messaging.Broker, emailSvc email.Service, logger *logger.Logger) *Notifier {
	return &Notifier{
		broker:   broker,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	msgs, err := n.broker.Subscribe(ctx, worker.EventsChannel)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	n.logger.Info("Starting appointment notifier")

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Shutting down appointment notifier")
			return nil
		case raw, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := n.handle(ctx, raw); err != nil {
				n.logger.Error(err, "Failed to handle event")
			}
		}
	}
}

func (n *Notifier) handle(ctx context.Context, raw []byte) error {
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}

	var evt model.AppointmentEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("failed to decode event payload: %w", err)
	}

	if evt.PatientEmail == "" {
		return nil
	}

	switch msg.Type {
	case model.EventAppointmentBooked:
		return n.emailSvc.SendBookingConfirmation(ctx, evt.PatientEmail, evt.DoctorName, evt.Date, evt.Time)
	case model.EventAppointmentCancelled:
		return n.emailSvc.SendCancellationNotice(ctx, evt.PatientEmail, evt.DoctorName, evt.Date, evt.Time)
	default:
		return nil
	}
}
