package dataset

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-server/api"
	"park-server/models"
)

type stubFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func TestStore_MemoizesUntilInvalidated(t *testing.T) {
	hist := writeTemp(t, "hist.csv", historicalHeader+"2022-06-15,Roller Coaster,45,12000,10,10:00,300,150,4\n")
	forecast := writeTemp(t, "forecast.csv", "Date,Attraction,Wait_time_max\n2022-07-27,Roller Coaster,35\n")

	store := NewStore(hist, forecast, nil)
	ds, err := store.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Historical(), 1)
	assert.Len(t, ds.Forecast(), 1)

	require.NoError(t, os.WriteFile(hist, []byte(historicalHeader+
		"2022-06-15,Roller Coaster,45,12000,10,10:00,300,150,4\n"+
		"2022-06-16,Roller Coaster,45,12000,10,10:00,300,150,4\n"), 0600))

	cached, err := store.Dataset(context.Background())
	require.NoError(t, err)
	assert.Same(t, ds, cached)

	store.Invalidate()
	fresh, err := store.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, fresh.Historical(), 2)

	reloaded, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ds.Generation())
	assert.Equal(t, uint64(2), fresh.Generation())
	assert.Equal(t, uint64(3), reloaded.Generation())
}

func TestStore_MissingSource(t *testing.T) {
	store := NewStore("/does/not/exist.csv", "/does/not/exist.csv", nil)
	_, err := store.Dataset(context.Background())
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestStore_RemoteForecast(t *testing.T) {
	hist := writeTemp(t, "hist.csv", historicalHeader)
	fetcher := &stubFetcher{body: []byte("Date,Attraction,Wait_time_max\n2022-07-30,Log Flume,20\n")}

	store := NewStore(hist, "https://example.test/forecast.csv", fetcher)
	ds, err := store.Dataset(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Forecast(), 1)
	assert.Equal(t, "Log Flume", ds.Forecast()[0].Attraction)
	assert.Equal(t, 1, fetcher.calls)
}

func TestStore_RemoteNotFound(t *testing.T) {
	hist := writeTemp(t, "hist.csv", historicalHeader)
	fetcher := &stubFetcher{err: &api.StatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}}

	store := NewStore(hist, "https://example.test/forecast.csv", fetcher)
	_, err := store.Dataset(context.Background())
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestDataset_InPeriodSpansPartitions(t *testing.T) {
	ds := New(
		[]models.Record{{Attraction: "A", Date: day(2022, time.July, 25)}, {Attraction: "A", Date: day(2022, time.July, 26)}},
		[]models.Record{{Attraction: "A", Date: day(2022, time.July, 27)}},
	)
	p := models.Period{Start: day(2022, time.July, 26), End: day(2022, time.August, 1)}

	got := ds.InPeriod(p)
	require.Len(t, got, 2)
	assert.Equal(t, day(2022, time.July, 26), got[0].Date)
	assert.Equal(t, day(2022, time.July, 27), got[1].Date)
	assert.Len(t, ds.Combined(), 3)
}

func TestSourceFor(t *testing.T) {
	assert.Equal(t, models.SourceHistorical, SourceFor(day(2022, time.July, 26)))
	assert.Equal(t, models.SourceForecast, SourceFor(day(2022, time.July, 27)))
}

func TestSourceWatcher_NotifiesOnWrite(t *testing.T) {
	path := writeTemp(t, "hist.csv", historicalHeader)
	changed := make(chan string, 1)

	w, err := NewSourceWatcher([]string{path}, 20*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte(historicalHeader+"x\n"), 0600))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}
