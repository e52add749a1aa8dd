// Package influx reads measured telemetry from an InfluxDB bucket as an
// alternative to the daily workbook exports.
package influx

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/tryathq/backdown/config"
	"github.com/tryathq/backdown/core/model"
	"github.com/tryathq/backdown/core/report"
	"github.com/tryathq/backdown/infra/logger"
)

// Source serves slot telemetry from a preloaded InfluxDB query. Raw points
// are averaged into 15-minute windows server-side; timestamps are expected in
// UTC, matching the naive day convention of the report engine.
type Source struct {
	client influxdb2.Client
	query  api.QueryAPI
	cfg    config.InfluxConfig
	log    logger.Logger
	values report.SlotValues
}

// NewSource creates a source for the given bucket.
func NewSource(cfg config.InfluxConfig) *Source {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/query")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 30 * time.Second}))
	return &Source{
		client: client,
		query:  client.QueryAPI(cfg.Org),
		cfg:    cfg,
		log:    logger.New("influx-scada"),
		values: make(report.SlotValues),
	}
}

// NewSourceWithCheck pings the instance before returning the source, so a
// misconfigured endpoint fails the run up front instead of producing a
// report full of blank telemetry.
func NewSourceWithCheck(ctx context.Context, cfg config.InfluxConfig) (*Source, error) {
	s := NewSource(cfg)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	health, err := s.client.Health(ctx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("influx health check: %w", err)
	}
	if health.Status != "pass" {
		s.Close()
		return nil, fmt.Errorf("influx health status: %s", health.Status)
	}
	return s, nil
}

// Preload fetches slot averages covering the given days into memory. Lookups
// afterwards are pure map reads, keeping report generation free of I/O.
func (s *Source) Preload(ctx context.Context, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	start, stop := days[0], days[0]
	for _, d := range days[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(stop) {
			stop = d
		}
	}
	stop = stop.Add(24 * time.Hour)

	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: %s, stop: %s)
  |> filter(fn: (r) => r._measurement == %q and r._field == %q)
  |> aggregateWindow(every: %dm, fn: mean, createEmpty: false)`,
		s.cfg.Bucket,
		start.Format(time.RFC3339), stop.Format(time.RFC3339),
		s.cfg.Measurement, s.cfg.Field, model.SlotMinutes)

	result, err := s.query.Query(ctx, flux)
	if err != nil {
		return fmt.Errorf("influx query: %w", err)
	}
	n := 0
	for result.Next() {
		v, ok := result.Record().Value().(float64)
		if !ok {
			continue
		}
		// aggregateWindow stamps each window with its end.
		slot := result.Record().Time().UTC().Add(-model.SlotMinutes * time.Minute)
		s.values[slot] = v
		n++
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("influx query: %w", err)
	}
	s.log.Infof("preloaded %d telemetry slots from %s", n, s.cfg.Bucket)
	return nil
}

// Scada returns the preloaded average for one slot.
func (s *Source) Scada(slot model.TimeSlot) (float64, bool) {
	v, ok := s.values[slot.Start()]
	return v, ok
}

func (s *Source) Close() {
	s.client.Close()
}
