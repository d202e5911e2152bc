package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_DiscardExporter(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Init(ctx, "hopbfs-test", "dev", "")
	require.NoError(t, err)

	_, span := Tracer().Start(ctx, "probe")
	span.End()

	require.NoError(t, shutdown(ctx))
}
