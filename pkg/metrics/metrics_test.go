package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "pulsecheck")
				So(manager.subsystem, ShouldEqual, "batch")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test-namespace")
				So(manager.subsystem, ShouldEqual, "test-subsystem")
				So(manager.enabled, ShouldBeFalse)
			})
		})
	})
}

func TestManagerCounters(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording batch and scoring events", func() {
			manager.batchesStarted.Inc()
			manager.batchesCompleted.Inc()
			manager.subjectsScored.Inc()
			manager.subjectsScored.Inc()
			manager.signalsAbsent.WithLabelValues("social").Inc()

			Convey("Then the counters carry the recorded values", func() {
				So(testutil.ToFloat64(manager.batchesStarted), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.batchesCompleted), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.subjectsScored), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.signalsAbsent.WithLabelValues("social")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.signalsAbsent.WithLabelValues("grades")), ShouldEqual, 0)
			})
		})

		Convey("When moving the in-flight gauge", func() {
			manager.subjectsInFlight.Add(3)
			manager.subjectsInFlight.Add(-1)

			Convey("Then the gauge reflects the net movement", func() {
				So(testutil.ToFloat64(manager.subjectsInFlight), ShouldEqual, 2)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the package-level helpers", t, func() {
		Convey("When recording through them", func() {
			RecordBatchStarted()
			RecordBatchDuration(12.5)
			UpdateWorkerCount(4)
			AddSubjectsInFlight(1)
			AddSubjectsInFlight(-1)
			RecordSubjectScored()
			RecordTextScoreLatency(0.8)
			RecordSignalAbsent("text")
			RecordSubjectDuplicate()
			RecordFetchError()
			RecordOCRError()
			RecordImageError()

			Convey("Then they act on a live global manager", func() {
				So(globalManager, ShouldNotBeNil)
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.subjectsInFlight), ShouldEqual, 0)
			})
		})

		Convey("When mounting a scrape handler", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
