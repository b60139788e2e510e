package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors in this package enqueue themselves from init() via register;
// MustRegister flushes the queue into the default registry exactly once,
// no matter how often it is called.
var (
	registerOnce sync.Once
	pending      []prometheus.Collector
)

func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(pending...)
	})
}

func init() {
	register(buildInfo)
}

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Constant gauge labelled with the running version and commit.",
	},
	[]string{"version", "commit"},
)

// SetBuildInfo pins the build labels; called once at startup.
func SetBuildInfo(version, commit string) {
	buildInfo.WithLabelValues(version, commit).Set(1)
}
