// Package batch converts files of semicolon separated coordinate records with
// a plcoord.Transformer.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/tzneal/plcoord"
	"github.com/tzneal/plcoord/internal/logging"
	"github.com/tzneal/plcoord/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/tzneal/plcoord/internal/batch"

// Output formats.
const (
	FormatText    = "text"
	FormatGeoJSON = "geojson"
)

var (
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrGeoJSONUnsupported = errors.New("operation has no geodetic position for geojson output")
)

// ArityError reports a record with the wrong number of values.
type ArityError struct {
	Line     int
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("line %d: expected %d values, got %d", e.Line, e.Expected, e.Got)
}

// ParseError reports a value that is not a number. Field counts from 1.
type ParseError struct {
	Line  int
	Field int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d field %d: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Config selects what a Processor does with each record.
type Config struct {
	Ellipsoid plcoord.Ellipsoid
	Operation string
	// CentralMeridian in degrees, used by fl2gk, fl2000 and fl1992.
	CentralMeridian float64
	// DMS formats angles as degrees, minutes and seconds in text output.
	DMS    bool
	Format string
}

// Option customises a Processor.
type Option func(*Processor)

// WithLogger sets the logger, the default drops all logs.
func WithLogger(log logging.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithMetrics sets the metrics updated per record and per file.
func WithMetrics(m *observability.BatchMetrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// Processor applies one operation to every record of its input. It holds no
// per-file state and may be shared between goroutines.
type Processor struct {
	transformer *plcoord.Transformer
	op          Operation
	inputs      []Column
	l0          float64
	dms         bool
	format      string

	log     logging.Logger
	metrics *observability.BatchMetrics
}

// NewProcessor validates cfg and returns a Processor for it.
func NewProcessor(cfg Config, opts ...Option) (*Processor, error) {
	t, err := plcoord.NewTransformerFor(cfg.Ellipsoid)
	if err != nil {
		return nil, err
	}
	op, err := LookupOperation(cfg.Operation)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(cfg.Format)
	switch format {
	case "":
		format = FormatText
	case FormatText:
	case FormatGeoJSON:
		if !op.SupportsGeoJSON() {
			return nil, fmt.Errorf("%w: %s", ErrGeoJSONUnsupported, op.Name)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
	switch op.Name {
	case "fl2000":
		if _, err := plcoord.PL2000Zone(cfg.CentralMeridian); err != nil {
			return nil, err
		}
	case "kras2grs80":
		if cfg.Ellipsoid != plcoord.Krasowski {
			return nil, fmt.Errorf("%w: bound to %s", plcoord.ErrNotKrasowski, cfg.Ellipsoid)
		}
	}

	p := &Processor{
		transformer: t,
		op:          op,
		inputs:      op.Inputs(cfg.Ellipsoid),
		l0:          cfg.CentralMeridian,
		dms:         cfg.DMS,
		format:      format,
		log:         logging.Noop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logging.Noop()
	}
	return p, nil
}

// Operation returns the operation applied to each record.
func (p *Processor) Operation() Operation { return p.op }

// Process converts every record read from r and writes the results to w.
// Blank lines and lines starting with '#' are skipped. The first bad record
// stops processing and its error is returned; nothing is written to w then.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "plcoord.Process", trace.WithAttributes(
		attribute.String("plcoord.operation", p.op.Name),
		attribute.String("plcoord.ellipsoid", p.transformer.Ellipsoid().Name()),
	))
	defer span.End()

	records, err := p.process(ctx, r, w)
	span.SetAttributes(attribute.Int("plcoord.records", records))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (p *Processor) process(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	span := trace.SpanFromContext(ctx)
	var fc *geojson.FeatureCollection
	if p.format == FormatGeoJSON {
		fc = geojson.NewFeatureCollection()
	}

	// Output is held back until every record converted.
	var buf bytes.Buffer
	records := 0
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return records, err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		in, out, err := p.convert(line, text)
		p.metrics.ObserveRecord(p.op.Name, err)
		if err != nil {
			span.AddEvent("record failed", trace.WithAttributes(
				attribute.Int("line", line),
				attribute.String("error", err.Error()),
			))
			p.log.Debug(ctx, "record failed", logging.Int("line", line), logging.Err(err))
			return records, err
		}
		records++

		if fc != nil {
			fc.Append(p.feature(line, in, out))
			continue
		}
		buf.WriteString(p.formatText(out))
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("read line %d: %w", line+1, err)
	}

	if fc != nil {
		data, err := fc.MarshalJSON()
		if err != nil {
			return records, err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	if _, err := buf.WriteTo(w); err != nil {
		return records, err
	}
	return records, nil
}

// convert parses one record and applies the operation to it.
func (p *Processor) convert(line int, text string) (in, out []float64, err error) {
	fields := strings.Split(text, ";")
	if len(fields) != len(p.inputs) {
		return nil, nil, &ArityError{Line: line, Expected: len(p.inputs), Got: len(fields)}
	}
	in = make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, nil, &ParseError{Line: line, Field: i + 1, Err: err}
		}
		in[i] = v
	}
	out, err = p.op.run(p.transformer, p.l0, in)
	if err != nil {
		return nil, nil, fmt.Errorf("line %d: %w", line, err)
	}
	return in, out, nil
}

func (p *Processor) formatText(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = p.formatValue(p.op.Outputs[i].Unit, v)
	}
	return strings.Join(parts, ";")
}

func (p *Processor) formatValue(u Unit, v float64) string {
	if u == Degrees {
		if p.dms {
			return plcoord.FormatDMS(v)
		}
		return strconv.FormatFloat(v, 'f', 9, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func (p *Processor) feature(line int, in, out []float64) *geojson.Feature {
	f := geojson.NewFeature(p.op.point(in, out))
	f.Properties["line"] = line
	f.Properties["operation"] = p.op.Name
	for i, c := range p.inputs {
		f.Properties["in_"+c.Name] = in[i]
	}
	for i, c := range p.op.Outputs {
		f.Properties[c.Name] = out[i]
	}
	return f
}

// ProcessFile converts the file in and writes the result to out. Output goes
// to a temporary file in the same directory that is renamed over out only
// when the whole file converted, so a failure leaves no partial output.
func (p *Processor) ProcessFile(ctx context.Context, in, out string) (err error) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "plcoord.ProcessFile", trace.WithAttributes(
		attribute.String("plcoord.input", in),
		attribute.String("plcoord.output", out),
		attribute.String("plcoord.operation", p.op.Name),
		attribute.String("plcoord.ellipsoid", p.transformer.Ellipsoid().Name()),
	))
	log := p.log.With(logging.String("input", in), logging.String("operation", p.op.Name))
	records := 0
	defer func() {
		p.metrics.ObserveFile(time.Since(start).Seconds(), err)
		span.SetAttributes(attribute.Int("plcoord.records", records))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error(ctx, "conversion failed", logging.Err(err))
		} else {
			log.Info(ctx, "converted file",
				logging.String("output", out),
				logging.Int("records", records),
			)
		}
		span.End()
	}()

	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if records, err = p.process(ctx, src, bw); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), out)
}
