package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tryathq/backdown/api/reports"
	"github.com/tryathq/backdown/config"
	coremetrics "github.com/tryathq/backdown/core/metrics"
	"github.com/tryathq/backdown/core/report"
	"github.com/tryathq/backdown/infra/excel"
	"github.com/tryathq/backdown/infra/influx"
	"github.com/tryathq/backdown/infra/logger"
	"github.com/tryathq/backdown/infra/metrics"
	"github.com/tryathq/backdown/infra/store"
)

// Service wires the loaders, the report engine, the writer and the optional
// history store together according to the configuration.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	store *store.Store
	sink  coremetrics.Sink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	svc := &Service{
		cfg:  cfg,
		log:  logger.New("service"),
		sink: coremetrics.NopSink{},
	}
	if cfg.Store.Enabled {
		s, err := store.New(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		svc.store = s
	}
	if cfg.Metrics.Enabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		svc.sink = sink
	}
	return svc, nil
}

// Store returns the history store, nil when disabled.
func (s *Service) Store() *store.Store { return s.store }

// GenerateReport runs one full generation: load the three sources, assemble
// the rows, write the workbook and persist it when the store is enabled.
func (s *Service) GenerateReport(ctx context.Context) (*report.Report, error) {
	started := time.Now()

	raw, err := excel.LoadInstructions(s.cfg.Inputs.Instructions)
	if err != nil {
		return nil, err
	}
	periods, err := report.Extract(raw)
	if err != nil {
		return nil, err
	}
	days := report.Days(periods)
	s.log.Infof("loaded %d instruction periods over %d days", len(periods), len(days))

	dc, err := excel.LoadDC(s.cfg.Inputs.DC, days)
	if err != nil {
		return nil, err
	}
	scada, closeScada, err := s.scadaSource(ctx, days)
	if err != nil {
		return nil, err
	}
	defer closeScada()

	params := s.cfg.Ramp.Params()
	rep, err := report.Generate(raw, dc, scada, params, s.log)
	if err != nil {
		return nil, err
	}
	for _, w := range rep.Warnings {
		s.log.Warnf("%v", w)
	}

	writer := excel.Writer{Sheet: s.cfg.Output.Sheet, Title: s.cfg.Output.Title, Params: params}
	if err := writer.Write(rep, s.cfg.Output.Path); err != nil {
		return nil, err
	}
	s.log.Infof("wrote %d rows to %s", len(rep.Rows), s.cfg.Output.Path)

	if s.store != nil {
		entry, err := s.store.Save(s.cfg.Output.Path, store.Entry{
			Title:    rep.Title,
			Rows:     len(rep.Rows),
			Periods:  rep.Periods,
			Warnings: len(rep.Warnings),
		})
		if err != nil {
			return nil, err
		}
		s.log.Infof("persisted report %s", entry.ID)
	}

	if err := s.sink.RecordReport(coremetrics.ReportEvent{
		Rows:        len(rep.Rows),
		Periods:     rep.Periods,
		DCMisses:    rep.DCMisses,
		ScadaMisses: rep.ScadaMisses,
		Unsupported: rep.Unsupported(),
		Duration:    time.Since(started),
		Time:        time.Now(),
	}); err != nil {
		s.log.Errorf("record metrics: %v", err)
	}
	return rep, nil
}

func (s *Service) scadaSource(ctx context.Context, days []time.Time) (report.ScadaSource, func(), error) {
	switch s.cfg.Inputs.Scada.Backend {
	case "influx":
		src, err := influx.NewSourceWithCheck(ctx, s.cfg.Inputs.Scada.Influx)
		if err != nil {
			return nil, nil, err
		}
		if err := src.Preload(ctx, days); err != nil {
			src.Close()
			return nil, nil, err
		}
		return src, src.Close, nil
	default:
		values, err := excel.LoadScada(s.cfg.Inputs.Scada, days)
		if err != nil {
			return nil, nil, err
		}
		return values, func() {}, nil
	}
}

// Serve exposes the report history API and the metrics endpoint, blocking
// until the context is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("serving requires store.enabled")
	}
	if s.cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.API.Addr,
		Handler:           reports.Mux(s.store, s.cfg.API.Token),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("report API listening on %s", s.cfg.API.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
