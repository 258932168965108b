// Package engine keeps an in-memory view of the lunch ledger consistent
// with the remote service. All shared state (records, totals, price,
// busy flags) is owned by the Engine and mutated only by its methods;
// callers read it through Snapshot.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/Itecs-company/Obed-micro/internal/api"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

// View is a read-only snapshot of the engine state.
type View struct {
	Records    []model.Record
	Totals     model.Totals
	LunchPrice float64
	Range      model.DateRange
	Loading    bool
	Importing  bool
}

// Engine synchronizes the local ledger view with the remote service.
type Engine struct {
	client *api.Client
	log    *slog.Logger

	mu        sync.Mutex
	rng       model.DateRange
	records   []model.Record
	totals    model.Totals
	price     float64
	draft     model.Draft
	loading   bool
	importing bool
	// gen is the generation of the most recently issued fetch. A fetch
	// applies its response only while its own generation is still
	// current, so a slow superseded request cannot overwrite newer state.
	gen uint64
}

// New creates an engine bound to the given ledger client.
func New(client *api.Client, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		client: client,
		log:    log,
		draft:  model.NewDraft(),
	}
}

// Snapshot returns a copy of the current view state.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := make([]model.Record, len(e.records))
	copy(records, e.records)
	return View{
		Records:    records,
		Totals:     e.totals,
		LunchPrice: e.price,
		Range:      e.rng,
		Loading:    e.loading,
		Importing:  e.importing,
	}
}

// SetRange replaces the date filter and refetches. Changing the filter is
// the sole trigger for a refetch; no validation or clamping happens here,
// ordering of the bounds is the server's concern.
func (e *Engine) SetRange(ctx context.Context, start, end *model.Date) error {
	e.mu.Lock()
	e.rng = model.DateRange{Start: start, End: end}
	e.mu.Unlock()
	return e.Refresh(ctx)
}

// Refresh issues one read for the current range and, on success,
// atomically replaces the record set, the totals and the lunch price.
// The price travels on the same response, so writes made elsewhere become
// visible here. On failure the previous view is retained unchanged.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	rng := e.rng
	e.loading = true
	e.mu.Unlock()

	resp, err := e.client.ListRecords(ctx, rng)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		// A newer fetch was issued while this one was in flight; its
		// result decides the view, ours is stale either way.
		e.log.Debug("discarding stale fetch result", "generation", gen, "current", e.gen)
		return nil
	}
	e.loading = false
	if err != nil {
		e.log.Warn("ledger fetch failed, keeping last known view", "error", err)
		return err
	}
	e.records = resp.Records
	e.totals = resp.Totals
	e.price = resp.LunchPrice
	return nil
}

// Update reconciles an edited record against its last-known server state.
// Only changed fields are submitted; an edit with no changes is accepted
// as-is without a request. On success the whole view is refetched rather
// than merging the server's response locally, keeping the totals
// consistent. On failure nothing is applied, so the view still shows the
// original record.
func (e *Engine) Update(ctx context.Context, original, edited model.Record) error {
	patch := Diff(original, edited)
	if len(patch) == 0 {
		return nil
	}
	if _, err := e.client.UpdateRecord(ctx, original.ID, patch); err != nil {
		e.log.Warn("record update rejected", "id", original.ID, "error", err)
		return err
	}
	return e.Refresh(ctx)
}

// Delete removes a record permanently and refetches.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	if err := e.client.DeleteRecord(ctx, id); err != nil {
		e.log.Warn("record delete rejected", "id", id, "error", err)
		return err
	}
	return e.Refresh(ctx)
}

// Draft returns the in-progress new record.
func (e *Engine) Draft() model.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// SetDraft replaces the in-progress new record.
func (e *Engine) SetDraft(d model.Draft) {
	e.mu.Lock()
	e.draft = d
	e.mu.Unlock()
}

// SubmitDraft posts the full draft (creation always sends all fields).
// On success the draft resets to defaults and the view is refetched; on
// failure the draft is preserved so the caller can retry without retyping.
func (e *Engine) SubmitDraft(ctx context.Context) error {
	e.mu.Lock()
	draft := e.draft
	e.mu.Unlock()

	created, err := e.client.CreateRecord(ctx, draft)
	if err != nil {
		e.log.Warn("record creation rejected", "full_name", draft.FullName, "error", err)
		return err
	}
	e.log.Info("record created", "id", created.ID, "full_name", created.FullName)

	e.mu.Lock()
	e.draft = model.NewDraft()
	e.mu.Unlock()
	return e.Refresh(ctx)
}

// Import uploads a spreadsheet as one opaque transaction. Row-level
// accept/reject decisions happen server-side; after a successful upload
// exactly one refetch re-derives the view regardless of how many rows
// made it in. The importing flag is cleared on every path.
func (e *Engine) Import(ctx context.Context, filename string, file io.Reader) error {
	e.mu.Lock()
	e.importing = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.importing = false
		e.mu.Unlock()
	}()

	imported, err := e.client.ImportRecords(ctx, filename, file)
	if err != nil {
		e.log.Warn("import failed", "file", filename, "error", err)
		return err
	}
	e.log.Info("import accepted", "file", filename, "imported", imported)
	return e.Refresh(ctx)
}

// Price reads the shared lunch price from settings without touching the
// record view.
func (e *Engine) Price(ctx context.Context) (float64, error) {
	resp, err := e.client.Settings(ctx)
	if err != nil {
		e.log.Warn("settings fetch failed", "error", err)
		return 0, err
	}
	e.mu.Lock()
	e.price = resp.LunchPrice
	e.mu.Unlock()
	return resp.LunchPrice, nil
}

// SetPrice parses and writes the shared lunch price. Values that are not
// positive finite numbers are rejected locally without a request. On
// success the server-confirmed price is stored and the view is refetched
// with the range cleared, i.e. the all-time view: a price change resets
// the visible range rather than preserving the previous selection.
func (e *Engine) SetPrice(ctx context.Context, raw string) error {
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return fmt.Errorf("lunch price must be a positive number, got %q", raw)
	}

	resp, err := e.client.UpdateSettings(ctx, parsed)
	if err != nil {
		e.log.Warn("price update rejected", "price", parsed, "error", err)
		return err
	}

	e.mu.Lock()
	e.price = resp.LunchPrice
	e.rng = model.DateRange{}
	e.mu.Unlock()
	return e.Refresh(ctx)
}
