package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeErrorUnwrapsToSentinel(t *testing.T) {
	err := &TimeError{Reading: time.Unix(0, 0).UTC()}
	require.ErrorIs(t, err, ErrClockUnavailable)
	require.Contains(t, err.Error(), "1970-01-01T00:00:00Z")
}
