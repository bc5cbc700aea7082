package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"env-inspector/internal/model"
)

// Prober runs the candidate list through the checker registry, one
// library at a time and strictly in list order.
type Prober struct {
	registry *Registry
	timeout  time.Duration
	logger   zerolog.Logger
}

// ProberOption is a functional option for configuring a Prober.
type ProberOption func(*Prober)

// WithTimeout bounds every individual check. Zero disables the bound.
func WithTimeout(d time.Duration) ProberOption {
	return func(p *Prober) {
		p.timeout = d
	}
}

// NewProber creates a Prober backed by registry.
func NewProber(registry *Registry, logger zerolog.Logger, opts ...ProberOption) *Prober {
	p := &Prober{
		registry: registry,
		logger:   logger.With().Str("component", "prober").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scan checks every definition in order and returns one result per name.
//
// A library that cannot be resolved is recorded as not installed and the
// scan moves on. Any other failure stops the scan: the returned
// ScanResult keeps the results gathered so far, records the fault and
// lists the remaining names as skipped, and the *Fault is returned as
// the error. The ScanResult is never nil.
func (p *Prober) Scan(ctx context.Context, title string, defs []*model.LibraryDefinition) (*model.ScanResult, error) {
	scan := model.NewScanResult(title, len(defs))

	p.logger.Debug().Int("candidates", len(defs)).Msg("starting library scan")

	for i, def := range defs {
		result, err := p.probe(ctx, def)
		if err != nil {
			scan.Fault = err.Error()
			for _, rest := range defs[i+1:] {
				if rest != nil {
					scan.Skipped = append(scan.Skipped, rest.Name)
				}
			}
			p.logger.Warn().
				Err(err).
				Int("processed", len(scan.Results)).
				Int("skipped", len(scan.Skipped)).
				Msg("library scan aborted")
			return scan, err
		}
		scan.Results = append(scan.Results, result)
	}

	p.logger.Debug().
		Int("installed", scan.InstalledCount()).
		Int("missing", scan.MissingCount()).
		Msg("library scan completed")

	return scan, nil
}

// probe checks a single definition. The returned error is always a *Fault.
func (p *Prober) probe(ctx context.Context, def *model.LibraryDefinition) (*model.ProbeResult, error) {
	if def == nil {
		return nil, &Fault{Err: errors.New("nil library definition")}
	}

	kind := def.ResolvedKind()
	if err := ctx.Err(); err != nil {
		return nil, &Fault{Library: def.Name, Kind: kind, Err: err}
	}

	checker, err := p.registry.Get(kind)
	if err != nil {
		return nil, &Fault{Library: def.Name, Kind: kind, Err: err}
	}

	checkCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	checkErr := safeCheck(checkCtx, checker, def)
	result := &model.ProbeResult{
		Name:     def.Name,
		Kind:     kind,
		Target:   def.ResolvedTarget(),
		Duration: time.Since(start),
	}

	switch {
	case checkErr == nil:
		result.Installed = true
	case IsNotFound(checkErr):
		p.logger.Debug().Err(checkErr).Str("library", def.Name).Msg("library not resolvable")
	default:
		return nil, &Fault{Library: def.Name, Kind: kind, Err: checkErr}
	}

	p.logger.Debug().
		Str("library", result.Name).
		Str("kind", string(result.Kind)).
		Str("target", result.Target).
		Bool("installed", result.Installed).
		Dur("duration", result.Duration).
		Msg("library probed")

	return result, nil
}

// safeCheck runs the checker, converting a panic into an error.
func safeCheck(ctx context.Context, c Checker, def *model.LibraryDefinition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("checker panicked: %v", r)
		}
	}()
	return c.Check(ctx, def)
}
