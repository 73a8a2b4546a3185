package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/device"
	"github.com/roach88/launchcore/internal/launcher"
	"github.com/roach88/launchcore/internal/prefs"
	"github.com/roach88/launchcore/internal/store"
	"github.com/roach88/launchcore/internal/testutil"
)

// CaseOK is the completion case of a step that returned no error.
const CaseOK = "ok"

// Harness is one scenario's world: a launcher over a simulated device, an
// in-memory SQLite store and a controllable clock.
type Harness struct {
	store    *store.Store
	prefs    *prefs.Prefs
	device   *device.Device
	clock    *testutil.Clock
	launcher *launcher.Launcher
	logger   *slog.Logger
}

// Option customises Run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes launcher and harness logs to log. Logs are discarded
// by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *runConfig) { c.logger = log }
}

// Run executes a scenario in a fresh world and returns its result.
// Expectation and assertion failures are recorded in the result; the
// returned error is for scenarios that could not run at all.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range opts {
		o(&cfg)
	}

	h, err := newHarness(ctx, scenario, cfg.logger)
	if err != nil {
		return nil, err
	}
	defer h.store.Close()

	result := NewResult()
	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	actx := &AssertionContext{Ctx: ctx, Prefs: h.prefs}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

func newHarness(ctx context.Context, s *Scenario, log *slog.Logger) (*Harness, error) {
	catalog := device.DefaultCatalog()
	if s.Catalog != "" {
		c, err := device.LoadCatalog(s.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog = c
	}
	start, err := s.StartTime()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	p, err := prefs.Load(ctx, st, log)
	if err != nil {
		st.Close()
		return nil, err
	}

	dev := device.New(catalog)
	clock := testutil.NewClock(start)
	l := launcher.New(dev, p, launcher.Options{
		BangURL:       s.Config.BangURL,
		Categories:    s.Config.Categories,
		ClockPackages: s.Config.ClockPackages,
		Clock:         clock,
		Tickets:       testutil.NewSequentialTickets(),
		Logger:        log,
	})
	return &Harness{store: st, prefs: p, device: dev, clock: clock, launcher: l, logger: log}, nil
}

// executeSetup runs setup steps; any failure aborts the scenario.
func (h *Harness) executeSetup(ctx context.Context, setup []ActionStep, result *Result) error {
	for i, step := range setup {
		outputCase, _, err := h.step(ctx, step.Action, step.Args, result)
		if err != nil {
			return fmt.Errorf("setup step %d (%s): %w", i, step.Action, err)
		}
		if outputCase != CaseOK {
			return fmt.Errorf("setup step %d (%s): completed with %s", i, step.Action, outputCase)
		}
	}
	return nil
}

// executeFlow runs flow steps and checks their expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		outputCase, res, err := h.step(ctx, step.Invoke, step.Args, result)
		if err != nil {
			return fmt.Errorf("flow step %d (%s): %w", i, step.Invoke, err)
		}
		if step.Expect == nil {
			continue
		}
		if outputCase != step.Expect.Case {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected case %s, got %s %s",
				i, step.Invoke, step.Expect.Case, outputCase, render(res)))
			continue
		}
		for key, want := range step.Expect.Result {
			got, ok := res[key]
			if !ok || !valuesEqual(got, want) {
				result.AddError(fmt.Sprintf("flow[%d] %s: result %s = %v, want %v",
					i, step.Invoke, key, got, want))
			}
		}
	}
	return nil
}

// step runs one action and traces it with the device events it caused.
// Domain errors become the completion case; malformed steps and
// infrastructure failures are returned.
func (h *Harness) step(ctx context.Context, action string, raw map[string]any, result *Result) (string, map[string]any, error) {
	fn, ok := actions[action]
	if !ok {
		return "", nil, fmt.Errorf("unknown action %q", action)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	result.AddInvocationTrace(action, raw)

	res, err := fn(ctx, h, args(raw))
	for _, e := range h.device.DrainJournal() {
		result.AddDeviceTrace(e.String())
	}

	outputCase := CaseOK
	switch {
	case err == nil:
	case errors.Is(err, ErrBadArgs):
		return "", nil, err
	case apps.CodeOf(err) != "":
		outputCase = string(apps.CodeOf(err))
		res = map[string]any{"notice": apps.Notice(err)}
	default:
		return "", nil, err
	}
	if res == nil {
		res = map[string]any{}
	}
	result.AddCompletionTrace(outputCase, res)
	h.logger.Debug("step completed", "action", action, "case", outputCase)
	return outputCase, res, nil
}
