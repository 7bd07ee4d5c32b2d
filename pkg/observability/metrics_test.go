package observability_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/observability"
	"github.com/latticekit/lattice/pkg/schema"
)

func TestMetrics(t *testing.T) {
	reg := lattice.NewRegistry()
	point := reg.Define("Point")
	require.NoError(t, point.Attribute("x", schema.Int()))

	m := observability.New(reg)
	promReg := prometheus.NewRegistry()
	require.NoError(t, promReg.Register(m))

	assert.Equal(t, 1, testutil.CollectAndCount(m, "lattice_definitions"))

	// One success, one failure.
	_, err := m.Construct(point, map[string]any{"x": 1})
	require.NoError(t, err)
	_, err = m.Construct(point, map[string]any{"x": "nope"})
	require.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(m, "lattice_constructions_total"))

	// New definitions show up in the gauge without re-registration.
	reg.Define("Other")
	expected := `
# HELP lattice_definitions Number of registered struct definitions
# TYPE lattice_definitions gauge
lattice_definitions 2
`
	require.NoError(t, testutil.CollectAndCompare(m, strings.NewReader(expected), "lattice_definitions"))
}
