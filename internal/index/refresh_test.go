package index

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/launchcore/internal/testutil"
)

func TestRefresher_PublishesSnapshot(t *testing.T) {
	fp := newFakePlatform(owner, owner)
	fp.install(owner, Activity{Label: "A", Package: "com.a"})
	ix, _ := newTestIndex(t, fp)
	r := NewRefresher(ix, testutil.NewSequentialTickets(), nil)

	assert.Nil(t, r.Snapshot())

	snap, err := r.RefreshAndWait(t.Context(), ModeDefault)
	require.NoError(t, err)
	assert.Equal(t, "ticket-0001", snap.Ticket)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Equal(t, 2, snap.Len())
	assert.Same(t, snap, r.Snapshot())
}

func TestRefresher_SnapshotIsImmutable(t *testing.T) {
	fp := newFakePlatform(owner, owner)
	fp.install(owner, Activity{Label: "A", Package: "com.a"})
	ix, _ := newTestIndex(t, fp)
	r := NewRefresher(ix, nil, nil)

	snap, err := r.RefreshAndWait(t.Context(), ModeIncludeHidden)
	require.NoError(t, err)

	entries := snap.Entries()
	entries[0].Label = "mutated"
	assert.Equal(t, "A", snap.Entries()[0].Label)
}

func TestRefresher_LastIssuedWins(t *testing.T) {
	fp := newFakePlatform(owner, owner)
	fp.install(owner, Activity{Label: "A", Package: "com.a"})

	// The first build blocks and ignores cancellation until released, so
	// it completes after the second one.
	release := make(chan struct{})
	var calls atomic.Int32
	fp.gate = func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			<-release
		}
		return nil
	}

	ix, _ := newTestIndex(t, fp)
	r := NewRefresher(ix, testutil.NewSequentialTickets(), nil)
	ctx := t.Context()

	first := r.Refresh(ctx, ModeDefault)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	second := r.Refresh(ctx, ModeIncludeHidden)
	snap2, err := second.Wait(ctx)
	require.NoError(t, err)

	close(release)
	_, err = first.Wait(ctx)
	assert.ErrorIs(t, err, ErrSuperseded)

	assert.Same(t, snap2, r.Snapshot())
	assert.Equal(t, ModeIncludeHidden, r.Snapshot().Mode)
	assert.Equal(t, "ticket-0002", r.Snapshot().Ticket)
}

func TestRefresher_SupersededRefreshIsCancelled(t *testing.T) {
	fp := newFakePlatform(owner, owner)
	var calls atomic.Int32
	cancelled := make(chan struct{})
	fp.gate = func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		}
		return nil
	}

	ix, _ := newTestIndex(t, fp)
	r := NewRefresher(ix, nil, nil)
	ctx := t.Context()

	first := r.Refresh(ctx, ModeDefault)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	r.Refresh(ctx, ModeDefault)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded refresh was not cancelled")
	}
	<-first.Done()
	_, err := first.Wait(ctx)
	assert.ErrorIs(t, err, ErrSuperseded)
}

// blockFirstBuild holds the first enumeration until release is closed.
func blockFirstBuild(fp *fakePlatform) (release chan struct{}, calls *atomic.Int32) {
	release = make(chan struct{})
	calls = &atomic.Int32{}
	fp.gate = func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			<-release
		}
		return nil
	}
	return release, calls
}

func TestRefresher_ListingAdoptsNewerSameMode(t *testing.T) {
	fp := newFakePlatform(owner, owner)
	fp.install(owner, Activity{Label: "A", Package: "com.a"})
	release, calls := blockFirstBuild(fp)

	ix, _ := newTestIndex(t, fp)
	r := NewRefresher(ix, testutil.NewSequentialTickets(), nil)
	ctx := t.Context()

	type result struct {
		snap *Snapshot
		err  error
	}
	got := make(chan result, 1)
	go func() {
		snap, err := r.Listing(ctx, ModeDefault)
		got <- result{snap, err}
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	second, err := r.Refresh(ctx, ModeDefault).Wait(ctx)
	require.NoError(t, err)
	close(release)

	res := <-got
	require.NoError(t, res.err)
	assert.Same(t, second, res.snap)
}

func TestRefresher_ListingBuildsWhenOvertakenByOtherMode(t *testing.T) {
	fp := newFakePlatform(owner, owner)
	fp.install(owner, Activity{Label: "A", Package: "com.a"})
	release, calls := blockFirstBuild(fp)

	ix, _ := newTestIndex(t, fp)
	r := NewRefresher(ix, testutil.NewSequentialTickets(), nil)
	ctx := t.Context()

	type result struct {
		snap *Snapshot
		err  error
	}
	got := make(chan result, 1)
	go func() {
		snap, err := r.Listing(ctx, ModeDefault)
		got <- result{snap, err}
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	_, err := r.Refresh(ctx, ModeIncludeHidden).Wait(ctx)
	require.NoError(t, err)
	close(release)

	res := <-got
	require.NoError(t, res.err)
	assert.Equal(t, ModeDefault, res.snap.Mode)
	assert.Equal(t, "ticket-0001", res.snap.Ticket)
	assert.Equal(t, 2, res.snap.Len(), "default listing keeps its sentinel")
	assert.Equal(t, ModeIncludeHidden, r.Snapshot().Mode, "the direct build is not published")
}

func TestUUIDv7Tickets(t *testing.T) {
	a := UUIDv7Tickets{}.Generate()
	b := UUIDv7Tickets{}.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
