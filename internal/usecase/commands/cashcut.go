package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/dedup"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidOperator     = errs.New("invalid operator")
	ErrCashCutLookupFailed = errs.New("cash cut lookup failed")
	ErrCashCutComputation  = errs.New("cash cut computation failed")
	ErrCashCutInProgress   = errs.New("cash cut in progress")
	ErrCashCutFailed       = errs.New("cash cut failed")
)

// CashCutOutcome is what the leader of one key publishes to its waiters.
type CashCutOutcome struct {
	Cut      *cashcut.CashCut
	Inserted bool
}

type CashCutRegistry = dedup.Registry[CashCutOutcome]

func NewCashCutRegistry(opts dedup.Options, clk clock.Clock) *CashCutRegistry {
	return dedup.NewRegistry[CashCutOutcome](opts, clk)
}

type CreateCashCutResult struct {
	CashCut    *cashcut.CashCut
	IsReplayed bool
}

type CashCutCommands interface {
	// Create closes the period since the previous cut. Retries that derive the
	// same key return the stored cut with IsReplayed set.
	Create(ctx context.Context, operatorID uuid.UUID, kind cashcut.Kind, notes string) (*CreateCashCutResult, error)
}

type CashCutOptions struct {
	KeyBucket        time.Duration
	WaitTimeout      time.Duration
	OperationTimeout time.Duration
	Location         *time.Location
	TopProducts      int
}

// maxPeriodAttempts bounds how often a leader recomputes after another
// process closed the period first.
const maxPeriodAttempts = 3

type cashCutCommandsImpl struct {
	// periodMu serializes read-end, aggregate and insert across keys, so two
	// different cuts never cover the same window.
	periodMu sync.Mutex
	store    shared.CashCutStore
	ledger   shared.LedgerReader
	registry *CashCutRegistry
	opts     CashCutOptions
	clock    clock.Clock
}

func NewCashCutCommands(
	store shared.CashCutStore,
	ledger shared.LedgerReader,
	registry *CashCutRegistry,
	opts CashCutOptions,
	clk clock.Clock,
) CashCutCommands {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &cashCutCommandsImpl{
		store:    store,
		ledger:   ledger,
		registry: registry,
		opts:     opts,
		clock:    clk,
	}
}

func (c *cashCutCommandsImpl) Create(ctx context.Context, operatorID uuid.UUID, kind cashcut.Kind, notes string) (*CreateCashCutResult, error) {
	if operatorID == uuid.Nil {
		return nil, ErrInvalidOperator
	}
	if !kind.IsValid() {
		return nil, errs.Mark(cashcut.ErrInvalidKind, errs.ErrDomainValidation)
	}
	notes = cashcut.NormalizeNotes(notes)
	if len(notes) > cashcut.MaxNotesLength {
		return nil, errs.Mark(cashcut.ErrNotesTooLong, errs.ErrDomainValidation)
	}

	now := c.clock.Now()
	key := cashcut.DeriveKey(operatorID, kind, now, c.opts.KeyBucket, notes)

	if out, ok := c.registry.Recent(key); ok {
		return &CreateCashCutResult{CashCut: out.Cut, IsReplayed: true}, nil
	}

	existing, err := c.store.FindByKey(ctx, key)
	if err == nil {
		c.registry.Remember(key, CashCutOutcome{Cut: existing})
		return &CreateCashCutResult{CashCut: existing, IsReplayed: true}, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrCashCutLookupFailed)
	}

	call, leader := c.registry.Join(key)
	if !leader {
		out, err := call.Wait(ctx, c.opts.WaitTimeout)
		return c.settle(ctx, key, out, err, true)
	}

	go c.lead(ctx, key, call, operatorID, kind, notes, now)

	out, err := call.Wait(ctx, c.opts.OperationTimeout)
	return c.settle(ctx, key, out, err, false)
}

// lead runs detached from the caller so a disconnecting client does not
// abort a cut other callers are waiting on.
func (c *cashCutCommandsImpl) lead(
	parent context.Context,
	key string,
	call *dedup.Call[CashCutOutcome],
	operatorID uuid.UUID,
	kind cashcut.Kind,
	notes string,
	now time.Time,
) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), c.opts.OperationTimeout)
	defer cancel()

	var (
		out CashCutOutcome
		err error
	)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("cash cut leader panicked", "key", key, "panic", r)
			out, err = CashCutOutcome{}, errs.Mark(errs.Newf("cash cut panicked: %v", r), ErrCashCutComputation)
		}
		c.registry.Finish(key, call, out, err)
	}()

	out, err = c.compute(ctx, key, operatorID, kind, notes, now)
}

func (c *cashCutCommandsImpl) compute(
	ctx context.Context,
	key string,
	operatorID uuid.UUID,
	kind cashcut.Kind,
	notes string,
	now time.Time,
) (CashCutOutcome, error) {
	c.periodMu.Lock()
	defer c.periodMu.Unlock()

	var (
		stored   *cashcut.CashCut
		inserted bool
		err      error
	)
	for attempt := 1; ; attempt++ {
		stored, inserted, err = c.closePeriod(ctx, key, operatorID, kind, notes, now)
		if err == nil {
			break
		}
		if !infra.IsKind(err, infra.KindConflict) {
			return CashCutOutcome{}, err
		}
		if attempt == maxPeriodAttempts {
			return CashCutOutcome{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		slog.Info("cash cut period moved, recomputing", "key", key, "attempt", attempt)
	}

	slog.Info("cash cut created",
		"cash_cut_id", stored.ID,
		"kind", string(stored.Kind),
		"inserted", inserted,
		"transactions", stored.TransactionCount,
		"period_start", stored.PeriodStart,
		"period_end", stored.PeriodEnd)

	return CashCutOutcome{Cut: stored, Inserted: inserted}, nil
}

// closePeriod reads the latest period end, aggregates the window after it and
// stores the cut. A store that sees the end move underneath answers CONFLICT.
func (c *cashCutCommandsImpl) closePeriod(
	ctx context.Context,
	key string,
	operatorID uuid.UUID,
	kind cashcut.Kind,
	notes string,
	now time.Time,
) (*cashcut.CashCut, bool, error) {
	latestEnd, err := c.store.LatestPeriodEnd(ctx)
	if err != nil {
		return nil, false, errs.Mark(err, ErrCashCutLookupFailed)
	}
	// A cut stored after this request started may end past now; closing at
	// that end keeps the new window empty instead of overlapping it.
	cutoff := now
	if latestEnd != nil && latestEnd.After(cutoff) {
		cutoff = *latestEnd
	}
	period := cashcut.NextPeriod(latestEnd, cutoff, c.opts.Location)

	ledger, err := c.ledger.Ledger(ctx, period)
	if err != nil {
		return nil, false, errs.Mark(err, ErrCashCutComputation)
	}

	summary, err := cashcut.Aggregate(ledger, c.opts.Location, c.opts.TopProducts)
	if err != nil {
		return nil, false, errs.Mark(err, ErrCashCutComputation)
	}

	cut, err := cashcut.New(kind, period, summary, key, notes, operatorID, now)
	if err != nil {
		return nil, false, errs.Mark(err, errs.ErrDomainValidation)
	}

	stored, inserted, err := c.store.Insert(ctx, cut)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, false, err
		}
		return nil, false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return stored, inserted, nil
}

func (c *cashCutCommandsImpl) settle(ctx context.Context, key string, out CashCutOutcome, err error, waiter bool) (*CreateCashCutResult, error) {
	if err != nil {
		switch {
		case errors.Is(err, dedup.ErrStillProcessing), ctx.Err() != nil && errors.Is(err, ctx.Err()):
			// The leader keeps going; a retry will find its result.
			slog.Info("cash cut still processing", "key", key, "waiter", waiter)
			return nil, errs.Mark(err, ErrCashCutInProgress)
		case waiter:
			return nil, errs.Mark(err, ErrCashCutFailed)
		default:
			return nil, err
		}
	}

	return &CreateCashCutResult{
		CashCut:    out.Cut,
		IsReplayed: waiter || !out.Inserted,
	}, nil
}
