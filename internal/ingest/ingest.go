// Package ingest subscribes to the telemetry MQTT feed and records incoming
// events. Only useful when telemetry runs in persisted mode; in synthesized
// mode recorded events are never read back.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-ops/internal/db"
	"github.com/ukydev/fleet-ops/internal/models"
)

// wireEvent is the shape simulators publish. The vehicle id rides in the
// topic, not the payload, so retained messages stay small.
type wireEvent struct {
	Timestamp    time.Time `json:"ts"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	SpeedKph     float64   `json:"speedKph"`
	EngineHours  float64   `json:"engineHours"`
	IgnitionOn   bool      `json:"ignitionOn"`
	CoolantTempC float64   `json:"coolantTempC"`
	BatteryV     float64   `json:"batteryV"`
	IdleMinutes  int       `json:"idleMinutes"`
}

// Subscriber consumes telemetry messages off an MQTT broker.
type Subscriber struct {
	client    mqtt.Client
	telemetry *db.TelemetryCollection
	topic     string
}

// NewSubscriber connects to the broker. Topic is expected to end in a single
// level wildcard holding the vehicle id, e.g. "fleetops/telemetry/+".
func NewSubscriber(broker, topic string, telemetry *db.TelemetryCollection) (*Subscriber, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("fleetops-ingest").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.WithError(err).Warn("mqtt connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %s: %w", broker, token.Error())
	}

	return &Subscriber{client: client, telemetry: telemetry, topic: topic}, nil
}

// Start subscribes and records events until ctx is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		s.handle(ctx, msg)
	}
	if token := s.client.Subscribe(s.topic, 1, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", s.topic, token.Error())
	}

	log.WithField("topic", s.topic).Info("telemetry ingest started")

	<-ctx.Done()
	s.client.Disconnect(250)
	return nil
}

func (s *Subscriber) handle(ctx context.Context, msg mqtt.Message) {
	vehicleID := vehicleIDFromTopic(msg.Topic())
	if vehicleID == "" {
		log.WithField("topic", msg.Topic()).Warn("telemetry message without vehicle id, dropped")
		return
	}

	var ev wireEvent
	if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("malformed telemetry payload, dropped")
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	event := models.TelemetryEvent{
		VehicleID:   vehicleID,
		Timestamp:   ev.Timestamp,
		Lat:         ev.Lat,
		Lon:         ev.Lon,
		SpeedKph:    ev.SpeedKph,
		EngineHours: ev.EngineHours,
		IgnitionOn:  ev.IgnitionOn,
		Metrics: models.TelemetryMetrics{
			CoolantTempC:         ev.CoolantTempC,
			BatteryV:             ev.BatteryV,
			IdleMinutesSinceLast: ev.IdleMinutes,
		},
	}

	if _, err := s.telemetry.Record(ctx, event); err != nil {
		log.WithError(err).WithField("vehicle_id", vehicleID).Error("failed to record telemetry event")
		return
	}

	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"speed_kph":  ev.SpeedKph,
	}).Debug("telemetry event recorded")
}

// vehicleIDFromTopic returns the last topic level.
func vehicleIDFromTopic(topic string) string {
	for i := len(topic) - 1; i >= 0; i-- {
		if topic[i] == '/' {
			return topic[i+1:]
		}
	}
	return ""
}
