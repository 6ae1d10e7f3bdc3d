package metrics

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermostat_panel/internal/config"
	"thermostat_panel/internal/logger"
)

func TestNew_DisabledReturnsNop(t *testing.T) {
	rec, err := New(config.Metrics{Enabled: false}, nil)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, rec)

	// must not panic
	rec.Gauge(Target, 70)
	rec.Incr(PushOK)
}

func TestStatsd_SendsNamespacedMetrics(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	rec, err := New(config.Metrics{
		Enabled:   true,
		Addr:      pc.LocalAddr().String(),
		Namespace: "panel.",
		Tags:      []string{"env:test"},
	}, logger.Nop())
	require.NoError(t, err)

	sd, ok := rec.(*Statsd)
	require.True(t, ok)

	sd.Gauge(Target, 71, "source:test")
	require.NoError(t, sd.Close())

	_ = pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	got := string(buf[:n])
	assert.True(t, strings.HasPrefix(got, "panel.target:71|g"), "got %q", got)
	assert.Contains(t, got, "env:test")
	assert.Contains(t, got, "source:test")
}
