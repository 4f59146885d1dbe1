package bigquery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

const (
	DispositionAppend   = "append"
	DispositionTruncate = "truncate"
)

type Config struct {
	ProjectID        string
	Dataset          string
	Location         string
	CredentialsFile  string
	WriteDisposition string
}

// loadFunc runs one load job for table from NDJSON data and returns the rows
// written.
type loadFunc func(ctx context.Context, table string, schema bigquery.Schema, data io.Reader) (int64, error)

// Sink loads tables into BigQuery through synchronous load jobs.
type Sink struct {
	project string
	dataset string
	client  *bigquery.Client
	load    loadFunc
}

var _ ports.TableSink = (*Sink)(nil)

func NewSink(ctx context.Context, cfg Config) (*Sink, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("bigquery project id is required")
	}
	if strings.TrimSpace(cfg.Dataset) == "" {
		return nil, errors.New("bigquery dataset is required")
	}
	disposition, err := parseDisposition(cfg.WriteDisposition)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, errs.Wrap(err, "create bigquery client")
	}
	if cfg.Location != "" {
		client.Location = cfg.Location
	}

	s := &Sink{project: cfg.ProjectID, dataset: cfg.Dataset, client: client}
	s.load = func(ctx context.Context, table string, schema bigquery.Schema, data io.Reader) (int64, error) {
		return runLoadJob(ctx, client.Dataset(cfg.Dataset).Table(table), schema, data, disposition)
	}
	return s, nil
}

func (s *Sink) Destination(table string) string {
	return dataset.Destination{Project: s.project, Dataset: s.dataset, Table: table}.String()
}

func (s *Sink) Load(ctx context.Context, table dataset.Table) (ports.LoadResult, error) {
	if ctx == nil {
		return ports.LoadResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.LoadResult{}, errs.Wrap(err, "check context")
	}

	res := ports.LoadResult{Destination: s.Destination(table.Name)}
	if table.Len() == 0 {
		return res, nil
	}

	var buf bytes.Buffer
	if err := EncodeNDJSON(&buf, table); err != nil {
		return res, errs.Wrap(err, "encode rows")
	}

	logCtx := logging.WithComponent(ctx, "sink.bigquery")
	logging.Debug(logCtx, "starting load job",
		slog.String("destination", res.Destination),
		slog.Int("bytes", buf.Len()),
	)

	rows, err := s.load(ctx, table.Name, Schema(table.Columns), &buf)
	if err != nil {
		return res, errs.WithStack(err)
	}
	if rows <= 0 {
		rows = int64(table.Len())
	}
	res.Rows = rows
	return res, nil
}

func (s *Sink) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func runLoadJob(ctx context.Context, dst *bigquery.Table, schema bigquery.Schema, data io.Reader, disposition bigquery.TableWriteDisposition) (int64, error) {
	src := bigquery.NewReaderSource(data)
	src.SourceFormat = bigquery.JSON
	src.Schema = schema

	loader := dst.LoaderFrom(src)
	loader.CreateDisposition = bigquery.CreateIfNeeded
	loader.WriteDisposition = disposition

	job, err := loader.Run(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "start load job")
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "wait for load job")
	}
	if err := status.Err(); err != nil {
		return 0, errs.Wrapf(err, "load job %s", job.ID())
	}

	if status.Statistics != nil {
		if stats, ok := status.Statistics.Details.(*bigquery.LoadStatistics); ok {
			return stats.OutputRows, nil
		}
	}
	return 0, nil
}

func parseDisposition(value string) (bigquery.TableWriteDisposition, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", DispositionAppend:
		return bigquery.WriteAppend, nil
	case DispositionTruncate:
		return bigquery.WriteTruncate, nil
	default:
		return "", fmt.Errorf("unsupported write disposition %q", value)
	}
}
