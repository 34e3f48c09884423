package idx_test

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/integra-admin/integra/pkg/idx"
)

func TestNewIsCanonicalULID(t *testing.T) {
	id := idx.New()

	u, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), ulid.Time(u.Time()), time.Minute)
}

func TestNewAtStampsTime(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()

	u, err := ulid.ParseStrict(idx.NewAt(tm).String())
	require.NoError(t, err)
	require.True(t, tm.Equal(ulid.Time(u.Time())))
}

func TestMonotonicWithinSameInstant(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)

	// Same millisecond still sorts in generation order.
	require.Less(t, a.String(), b.String())
}
