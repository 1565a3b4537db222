package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		Register(reg)
		Register(reg)
	})

	ResearchRequestsTotal.WithLabelValues("demo").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(ResearchRequestsTotal.WithLabelValues("demo")), 1.0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
