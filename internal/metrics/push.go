package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// newGatewayPusher returns a function that replaces the job's metrics on the
// Pushgateway with the current contents of the registry.
func newGatewayPusher(url, job string, gatherer prometheus.Gatherer) func(context.Context) error {
	pusher := push.New(url, job).Gatherer(gatherer)
	return func(ctx context.Context) error {
		return pusher.PushContext(ctx)
	}
}
