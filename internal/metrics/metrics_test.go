package metrics

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fentz26/blanktimer/internal/countdown"
	"github.com/fentz26/blanktimer/internal/models"
	"github.com/fentz26/blanktimer/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRecorderObservesEngine(t *testing.T) {
	rec := NewRecorder()
	e := countdown.New(store.NewMemory())
	e.Subscribe(rec.Observe)

	e.Start(models.NewDuration(0, 0, 4))
	e.Tick()
	require.NoError(t, e.Pause())
	require.NoError(t, e.Resume())
	for i := 0; i < 3; i++ {
		e.Tick()
	}
	require.NoError(t, e.Restart())
	require.NoError(t, e.Cancel())

	require.Equal(t, 1.0, testutil.ToFloat64(rec.transitions.WithLabelValues("start")))
	require.Equal(t, 4.0, testutil.ToFloat64(rec.transitions.WithLabelValues("tick")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.transitions.WithLabelValues("pause")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.transitions.WithLabelValues("cancel")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.finished.WithLabelValues("completed")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.finished.WithLabelValues("cancelled")))

	// Cancel leaves the ring full.
	require.Equal(t, 1.0, testutil.ToFloat64(rec.progress))
	require.Equal(t, 0.0, testutil.ToFloat64(rec.remaining))
}

func TestWriteFile(t *testing.T) {
	rec := NewRecorder()
	e := countdown.New(store.NewMemory())
	e.Subscribe(rec.Observe)
	e.Start(models.NewDuration(0, 0, 30))
	e.Tick()

	path := filepath.Join(t.TempDir(), "blanktimer.prom")
	require.NoError(t, rec.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.True(t, strings.Contains(out, `blanktimer_countdown_transitions_total{event="tick"} 1`), out)
	require.Contains(t, out, "blanktimer_countdown_remaining_seconds 29")
}
