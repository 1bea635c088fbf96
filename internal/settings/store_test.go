package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/blue/internal/storage"
)

// recordingAdapter is an in-memory adapter that records the order of calls
// and can inject failures.
type recordingAdapter struct {
	mu     sync.Mutex
	values map[string]string
	ops    []string
	sets   []string // blobs in the order they reached storage

	getErr   error
	setErr   error
	getPanic bool
	setGate  chan struct{}
}

func newRecordingAdapter() *recordingAdapter {
	return &recordingAdapter{values: make(map[string]string)}
}

func (r *recordingAdapter) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "get:"+key)
	if r.getPanic {
		panic("storage exploded")
	}
	if r.getErr != nil {
		return "", r.getErr
	}
	v, ok := r.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (r *recordingAdapter) Set(_ context.Context, key, value string) error {
	if r.setGate != nil {
		<-r.setGate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "set:"+key)
	if r.setErr != nil {
		return r.setErr
	}
	r.values[key] = value
	r.sets = append(r.sets, value)
	return nil
}

func (r *recordingAdapter) Close() error { return nil }

func (r *recordingAdapter) snapshot() (ops []string, sets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...), append([]string(nil), r.sets...)
}

func (r *recordingAdapter) stored(t *testing.T) Settings {
	t.Helper()
	r.mu.Lock()
	blob, ok := r.values[DefaultKey]
	r.mu.Unlock()
	require.True(t, ok, "no settings stored")
	s, _, err := Decode(blob)
	require.NoError(t, err)
	return s
}

func newTestStore(t *testing.T, adapter storage.Adapter) *Store {
	t.Helper()
	s := New(adapter)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})
	return s
}

func flush(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func TestStore_StartsWithDefaults(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())
	assert.Equal(t, Defaults(), s.Settings())
	assert.False(t, s.Loaded())
}

func TestStore_UpdateOverwritesOnlyPatchedKeys(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())
	s.Initialize(context.Background())

	patches := []Patch{
		{Theme: lo.ToPtr(ThemeDark)},
		{Currency: lo.ToPtr(CurrencyGBP), ConfirmTrades: lo.ToPtr(false)},
		{ChartTimeframe: lo.ToPtr(Timeframe1Y), DataUsage: lo.ToPtr(DataWifiOnly), ReduceMotion: lo.ToPtr(true)},
		{},
	}

	for i, p := range patches {
		t.Run(fmt.Sprintf("patch %d", i), func(t *testing.T) {
			prior := s.Settings()
			got, err := s.Update(p)
			require.NoError(t, err)
			assert.Equal(t, got, s.Settings())

			changed := p.Keys()
			for _, f := range Fields() {
				if lo.Contains(changed, f.Key) {
					continue
				}
				assert.Equal(t, f.Get(prior), f.Get(got), "key %s changed", f.Key)
			}
			assert.Equal(t, p.Apply(prior), got)
		})
	}
}

func TestStore_UpdateScenario(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())
	s.Initialize(context.Background())

	_, err := s.Update(Patch{
		ShowCandlestickBackground: lo.ToPtr(false),
		Currency:                  lo.ToPtr(CurrencyEUR),
	})
	require.NoError(t, err)

	got := s.Settings()
	assert.Equal(t, ThemeLight, got.Theme)
	assert.False(t, got.ShowCandlestickBackground)
	assert.Equal(t, CurrencyEUR, got.Currency)
}

func TestStore_UpdateRejectsInvalidValues(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	_, err := s.Update(Patch{
		Currency: lo.ToPtr(CurrencyEUR),
		Theme:    lo.ToPtr(ThemeMode("sepia")),
	})
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, Defaults(), s.Settings(), "a rejected patch must not partially apply")

	flush(t, s)
	_, sets := adapter.snapshot()
	assert.Empty(t, sets)
}

func TestStore_SetParsesStringValues(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())
	s.Initialize(context.Background())

	got, err := s.Set("confirmTrades", "false")
	require.NoError(t, err)
	assert.False(t, got.ConfirmTrades)

	_, err = s.Set("leverage", "10x")
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = s.Set("confirmTrades", "maybe")
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestStore_ResetRestoresDefaults(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	_, err := s.Update(Patch{
		Theme:            lo.ToPtr(ThemeSystem),
		FontSize:         lo.ToPtr(FontLarge),
		DefaultOrderType: lo.ToPtr(OrderStop),
		BiometricLogin:   lo.ToPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, Defaults(), s.Reset())
	assert.Equal(t, Defaults(), s.Settings())

	flush(t, s)
	assert.Equal(t, Defaults(), adapter.stored(t))
}

func TestStore_InitializeHydratesAndMergesOverDefaults(t *testing.T) {
	adapter := newRecordingAdapter()
	// Legacy layout: no schema version, one field missing.
	adapter.values[DefaultKey] = `{"theme":"dark","currency":"GBP","confirmTrades":false}`

	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	want := Defaults()
	want.Theme = ThemeDark
	want.Currency = CurrencyGBP
	want.ConfirmTrades = false
	assert.Equal(t, want, s.Settings())
	assert.True(t, s.Loaded())

	// The normalized record is written back with the current version.
	flush(t, s)
	assert.Equal(t, want, adapter.stored(t))
	_, sets := adapter.snapshot()
	require.Len(t, sets, 1)
	assert.Contains(t, sets[0], `"schemaVersion":1`)
}

func TestStore_InitializeCurrentBlobIsNotRewritten(t *testing.T) {
	adapter := newRecordingAdapter()
	stored := Defaults()
	stored.Theme = ThemeDark
	blob, err := Encode(stored)
	require.NoError(t, err)
	adapter.values[DefaultKey] = blob

	s := newTestStore(t, adapter)
	s.Initialize(context.Background())
	assert.Equal(t, stored, s.Settings())

	flush(t, s)
	_, sets := adapter.snapshot()
	assert.Empty(t, sets)
}

func TestStore_InitializeReadFailureUsesDefaults(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.getErr = errors.New("disk on fire")

	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	assert.Equal(t, Defaults(), s.Settings())
	assert.True(t, s.Loaded())

	flush(t, s)
	_, sets := adapter.snapshot()
	assert.Empty(t, sets, "a failed read must not clobber stored data")
}

func TestStore_InitializeRecoversFromPanickingAdapter(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.getPanic = true

	s := newTestStore(t, adapter)
	require.NotPanics(t, func() { s.Initialize(context.Background()) })
	assert.Equal(t, Defaults(), s.Settings())
	assert.True(t, s.Loaded())
}

func TestStore_InitializeCorruptBlobUsesDefaults(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.values[DefaultKey] = `{"theme": "dark"`

	s := newTestStore(t, adapter)
	s.Initialize(context.Background())
	assert.Equal(t, Defaults(), s.Settings())

	flush(t, s)
	assert.Equal(t, Defaults(), adapter.stored(t))
}

func TestStore_InitializeOnlyOnce(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter)
	s.Initialize(context.Background())
	s.Initialize(context.Background())

	ops, _ := adapter.snapshot()
	assert.Equal(t, []string{"get:" + DefaultKey}, ops)
}

func TestStore_NoWriteBeforeInitialize(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter)

	_, err := s.Update(Patch{Theme: lo.ToPtr(ThemeDark)})
	require.NoError(t, err)
	s.Reset()
	flush(t, s)

	ops, _ := adapter.snapshot()
	assert.Empty(t, ops, "nothing may reach storage before hydration")

	s.Initialize(context.Background())
	_, err = s.Update(Patch{Currency: lo.ToPtr(CurrencyEUR)})
	require.NoError(t, err)
	flush(t, s)

	ops, _ = adapter.snapshot()
	require.Len(t, ops, 2)
	assert.Equal(t, "get:"+DefaultKey, ops[0])
	assert.Equal(t, "set:"+DefaultKey, ops[1])
}

func TestStore_HydrationWinsOverEarlyUpdates(t *testing.T) {
	adapter := newRecordingAdapter()
	stored := Defaults()
	stored.Currency = CurrencyGBP
	blob, err := Encode(stored)
	require.NoError(t, err)
	adapter.values[DefaultKey] = blob

	s := newTestStore(t, adapter)
	_, err = s.Update(Patch{Currency: lo.ToPtr(CurrencyEUR)})
	require.NoError(t, err)

	s.Initialize(context.Background())
	assert.Equal(t, CurrencyGBP, s.Settings().Currency)
}

func TestStore_FailedWriteKeepsMemory(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.setErr = errors.New("quota exceeded")

	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	got, err := s.Update(Patch{Theme: lo.ToPtr(ThemeDark)})
	require.NoError(t, err)
	flush(t, s)

	assert.Equal(t, got, s.Settings())
	assert.Equal(t, ThemeDark, s.Settings().Theme)
}

func TestStore_WritesCoalesceToLastState(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.setGate = make(chan struct{})

	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	timeframes := []Timeframe{Timeframe1D, Timeframe1W, Timeframe1M, Timeframe3M, Timeframe1Y}
	for i := 0; i < 50; i++ {
		_, err := s.Update(Patch{ChartTimeframe: lo.ToPtr(timeframes[i%len(timeframes)])})
		require.NoError(t, err)
	}
	close(adapter.setGate)
	flush(t, s)

	_, sets := adapter.snapshot()
	assert.NotEmpty(t, sets)
	assert.Less(t, len(sets), 50, "pending writes should coalesce")
	assert.Equal(t, s.Settings(), adapter.stored(t))
}

func TestStore_ConcurrentUpdatesConverge(t *testing.T) {
	adapter := newRecordingAdapter()
	s := newTestStore(t, adapter)
	s.Initialize(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Update(Patch{HighContrastMode: lo.ToPtr(i%2 == 0)})
			_ = s.Settings()
		}(i)
	}
	wg.Wait()
	flush(t, s)

	assert.Equal(t, s.Settings(), adapter.stored(t))
}

func TestStore_SubscribeAndCancel(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())

	var got []Settings
	cancel := s.Subscribe(func(next Settings) { got = append(got, next) })

	s.Initialize(context.Background())
	_, err := s.Update(Patch{Theme: lo.ToPtr(ThemeDark)})
	require.NoError(t, err)

	require.Len(t, got, 2, "hydration and update both notify")
	assert.Equal(t, ThemeDark, got[1].Theme)

	cancel()
	cancel()
	s.Reset()
	assert.Len(t, got, 2)
}

func TestStore_ListenersRunInOrder(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())
	s.Initialize(context.Background())

	var order []int
	s.Subscribe(func(Settings) { order = append(order, 1) })
	s.Subscribe(func(Settings) { order = append(order, 2) })
	s.Subscribe(func(Settings) { order = append(order, 3) })

	_, err := s.Update(Patch{ReduceMotion: lo.ToPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestStore_SnapshotsDoNotAlias(t *testing.T) {
	s := newTestStore(t, newRecordingAdapter())
	snap := s.Settings()
	snap.Theme = ThemeDark
	assert.Equal(t, ThemeLight, s.Settings().Theme)
}

func TestStore_CloseFlushes(t *testing.T) {
	adapter := newRecordingAdapter()
	s := New(adapter)
	s.Initialize(context.Background())
	_, err := s.Update(Patch{Currency: lo.ToPtr(CurrencyGBP)})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
	assert.Equal(t, CurrencyGBP, adapter.stored(t).Currency)

	// Writes after close are dropped, not panics.
	_, err = s.Update(Patch{Currency: lo.ToPtr(CurrencyUSD)})
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))
}
