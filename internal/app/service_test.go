package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/warp/internal/app"
	"github.com/okian/warp/internal/domain/propulsion"
	"github.com/okian/warp/internal/domain/units"
	"github.com/okian/warp/internal/domain/velocity"
	"github.com/okian/warp/pkg/logger"
	"github.com/okian/warp/pkg/metrics"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func newService() (*service.Service, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	m := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
	return service.New(service.WithMetrics(m)), registry
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should be created", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Evaluate(t *testing.T) {
	Convey("Given a service", t, func() {
		svc, registry := newService()
		ctx := context.Background()

		Convey("When evaluating a warp velocity", func() {
			res, err := svc.Evaluate(ctx, "27c")

			Convey("Then the warp factor is set and impulse is not", func() {
				So(err, ShouldBeNil)
				So(res.RunID, ShouldNotBeEmpty)
				So(res.Input.Speed, ShouldEqual, 27*units.SpeedOfLight)
				So(res.Warp.OK, ShouldBeTrue)
				So(res.Warp.Value, ShouldAlmostEqual, 3, 1e-12)
				So(res.Impulse, ShouldResemble, propulsion.None)
			})

			Convey("And the conversion is counted by unit", func() {
				So(counterValue(registry, "warp_calculator_conversions_total", "c"), ShouldEqual, 1)
			})
		})

		Convey("When evaluating an impulse velocity", func() {
			res, err := svc.Evaluate(ctx, "i")

			Convey("Then impulse is 100 percent and warp is not set", func() {
				So(err, ShouldBeNil)
				So(res.Impulse.OK, ShouldBeTrue)
				So(res.Impulse.Value, ShouldEqual, 100)
				So(res.Warp.OK, ShouldBeFalse)
			})
		})

		Convey("When evaluating an input without a unit", func() {
			res, err := svc.Evaluate(ctx, "50 banana")

			Convey("Then an invalid unit error is returned and counted", func() {
				So(errors.Is(err, velocity.ErrInvalidUnit), ShouldBeTrue)
				So(res.Input, ShouldBeNil)
				So(counterValue(registry, "warp_calculator_errors_total", "invalid_unit"), ShouldEqual, 1)
			})
		})

		Convey("When evaluating a bad magnitude", func() {
			_, err := svc.Evaluate(ctx, "abckph")

			Convey("Then a parse error is counted", func() {
				So(errors.Is(err, velocity.ErrParse), ShouldBeTrue)
				So(counterValue(registry, "warp_calculator_errors_total", "parse"), ShouldEqual, 1)
			})
		})

		Convey("When evaluating a velocity beyond warp 10", func() {
			_, err := svc.Evaluate(ctx, "10000c")

			Convey("Then the limit error is counted", func() {
				So(errors.Is(err, velocity.ErrVelocityExceedsLimit), ShouldBeTrue)
				So(counterValue(registry, "warp_calculator_errors_total", "velocity_exceeds_limit"), ShouldEqual, 1)
			})
		})
	})
}

func TestService_Derive(t *testing.T) {
	Convey("Given a service", t, func() {
		svc, registry := newService()

		Convey("When deriving without a velocity", func() {
			_, err := svc.Derive(nil)

			Convey("Then a missing velocity error is returned and counted", func() {
				So(errors.Is(err, propulsion.ErrMissingVelocity), ShouldBeTrue)
				So(counterValue(registry, "warp_calculator_errors_total", "missing_velocity"), ShouldEqual, 1)
			})
		})

		Convey("When deriving a parsed velocity", func() {
			in, err := velocity.Parse("1c")
			So(err, ShouldBeNil)
			res, err := svc.Derive(in)

			Convey("Then warp factor one is returned", func() {
				So(err, ShouldBeNil)
				So(res.Input, ShouldEqual, in)
				So(res.Warp.Value, ShouldEqual, 1)
			})
		})
	})
}

func TestService_Logging(t *testing.T) {
	Convey("Given a service with a debug logger", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
		So(logger.SetLevelString("debug"), ShouldBeNil)
		defer func() {
			_ = logger.Init()
		}()

		registry := prometheus.NewRegistry()
		svc := service.New(
			service.WithLogger(logger.Named("service")),
			service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(registry))),
		)

		Convey("When a velocity is evaluated", func() {
			res, err := svc.Evaluate(context.Background(), "c")

			Convey("Then the run is logged with its id and a readable speed", func() {
				So(err, ShouldBeNil)
				out := buf.String()
				So(out, ShouldContainSubstring, "velocity evaluated")
				So(out, ShouldContainSubstring, "run_id="+res.RunID)
				So(out, ShouldContainSubstring, "Mm/s")
			})
		})

		Convey("When a velocity is rejected", func() {
			_, err := svc.Evaluate(context.Background(), "fast")

			Convey("Then the rejection is logged with the error kind", func() {
				So(err, ShouldNotBeNil)
				So(buf.String(), ShouldContainSubstring, "kind=invalid_unit")
			})
		})
	})
}

// counterValue gathers registry and returns the value of the named counter
// child carrying label, or zero when it has not been recorded.
func counterValue(registry *prometheus.Registry, name, label string) float64 {
	families, err := registry.Gather()
	if err != nil {
		return 0
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
