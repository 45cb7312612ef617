package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Location is a lat/lon pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Telemetry is the wire payload published per tick. The vehicle id rides
// in the topic.
type Telemetry struct {
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

// Work areas around Salalah and Muscat, matching the fixture fleet.
var sites = []Location{
	{Lat: 17.0151, Lon: 54.0924}, // Salalah depot
	{Lat: 17.0380, Lon: 54.1120}, // Salalah east section
	{Lat: 23.5880, Lon: 58.4060}, // Al Khuwair
	{Lat: 23.5950, Lon: 58.3800}, // Al Ghubrah
	{Lat: 24.3500, Lon: 56.7400}, // Sohar yard
}

func jitterLocation(base Location, meters float64) Location {
	latMetersPerDeg := 111320.0
	lonMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLon := (rand.Float64()*2 - 1) * (meters / lonMetersPerDeg)
	return Location{Lat: base.Lat + dLat, Lon: base.Lon + dLon}
}

// VehicleState tracks one simulated machine between ticks.
type VehicleState struct {
	VehicleID   string
	Position    Location
	SpeedKph    float64
	EngineHours float64
	CoolantC    float64
	BatteryV    float64
	IdleMinutes int
	IgnitionOn  bool
}

func newVehicleState(id string) *VehicleState {
	return &VehicleState{
		VehicleID:   id,
		Position:    jitterLocation(sites[rand.Intn(len(sites))], 500),
		SpeedKph:    10 + rand.Float64()*30,
		EngineHours: 5000 + rand.Float64()*3000,
		CoolantC:    85 + rand.Float64()*10,
		BatteryV:    12.5 + rand.Float64(),
		IgnitionOn:  true,
	}
}

func (s *VehicleState) tick(tickSec float64) {
	// speed noise; site machines crawl, they do not cruise
	s.SpeedKph += (rand.Float64()*2 - 1) * 3
	if s.SpeedKph < 0 {
		s.SpeedKph = 0
	}
	if s.SpeedKph > 60 {
		s.SpeedKph = 60
	}

	// occasionally idle for a while
	if rand.Float64() < 0.05 {
		s.SpeedKph = 0
	}
	if s.SpeedKph == 0 {
		s.IdleMinutes += int(tickSec / 60)
		if s.IdleMinutes == 0 {
			s.IdleMinutes = 1
		}
	} else {
		s.IdleMinutes = 0
	}

	// drift within the work area
	s.Position = jitterLocation(s.Position, s.SpeedKph*tickSec/3.6)

	if s.IgnitionOn {
		s.EngineHours += tickSec / 3600.0
	}

	// coolant tracks load, battery sags while idle
	s.CoolantC += (rand.Float64()*2 - 1) * 1.5
	if s.SpeedKph > 40 {
		s.CoolantC += 0.5
	}
	if s.CoolantC < 75 {
		s.CoolantC = 75
	}
	if s.CoolantC > 112 {
		s.CoolantC = 112
	}
	s.BatteryV = 12.2 + rand.Float64()*1.6
}

func (s *VehicleState) telemetry() Telemetry {
	return Telemetry{
		Timestamp:    time.Now().UTC(),
		Lat:          s.Position.Lat,
		Lon:          s.Position.Lon,
		SpeedKph:     s.SpeedKph,
		EngineHours:  s.EngineHours,
		IgnitionOn:   s.IgnitionOn,
		CoolantTempC: s.CoolantC,
		BatteryV:     s.BatteryV,
		IdleMinutes:  s.IdleMinutes,
	}
}

func simulateVehicle(client mqtt.Client, topicPrefix string, s *VehicleState, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	topic := fmt.Sprintf("%s/%s", topicPrefix, s.VehicleID)
	for range tick.C {
		s.tick(interval.Seconds())

		data, err := json.Marshal(s.telemetry())
		if err != nil {
			log.WithError(err).Error("Failed to marshal telemetry")
			continue
		}
		token := client.Publish(topic, 1, false, data)
		token.Wait()
		if token.Error() != nil {
			log.WithError(token.Error()).WithField("vehicle_id", s.VehicleID).Error("Failed to publish telemetry")
			continue
		}
		log.WithFields(log.Fields{
			"vehicle_id": s.VehicleID,
			"speed_kph":  s.SpeedKph,
			"coolant_c":  s.CoolantC,
		}).Info("Published telemetry")
	}
}

func main() {
	broker := os.Getenv("SIM_MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}

	topicPrefix := os.Getenv("SIM_TOPIC_PREFIX")
	if topicPrefix == "" {
		topicPrefix = "fleetops/telemetry"
	}

	fleetSize := 3
	if val := os.Getenv("SIM_FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			fleetSize = n
		}
	}

	interval := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("fleetops-simulator").
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).Fatal("Failed to connect to MQTT broker")
	}

	log.WithFields(log.Fields{
		"broker":     broker,
		"fleet_size": fleetSize,
		"interval":   interval,
	}).Info("Starting fleet simulation")

	// The first three ids line up with the fixture fleet so recorded series
	// land on vehicles the dashboard already shows.
	ids := []string{"veh_001", "veh_002", "veh_003"}
	for i := len(ids); i < fleetSize; i++ {
		ids = append(ids, fmt.Sprintf("veh_%03d", i+1))
	}

	for _, id := range ids[:fleetSize] {
		go simulateVehicle(client, topicPrefix, newVehicleState(id), interval)
	}

	log.Info("Telemetry simulation started")
	select {} // Block forever
}
