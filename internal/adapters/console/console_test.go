package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/warp/internal/adapters/console"
	service "github.com/okian/warp/internal/app"
	"github.com/okian/warp/pkg/logger"
	"github.com/okian/warp/pkg/metrics"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

func run(input string, opts ...console.Option) string {
	registry := prometheus.NewRegistry()
	svc := service.New(service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(registry))))

	var out bytes.Buffer
	err := console.New(svc, opts...).Run(context.Background(), strings.NewReader(input), &out)
	So(err, ShouldBeNil)
	return out.String()
}

func TestConsole_Run(t *testing.T) {
	Convey("Given the console", t, func() {
		Convey("When a warp velocity is entered", func() {
			out := run("27c\n")

			Convey("Then the echo and warp factor are printed", func() {
				So(out, ShouldEqual, console.Prompt+
					"\nA velocity of 27c is:\n\n"+
					"Warp Factor: 3.0\n"+
					"Percent Impulse: None\n")
			})
		})

		Convey("When full impulse is entered", func() {
			out := run("i\n")

			Convey("Then percent impulse carries a percent sign", func() {
				So(out, ShouldEqual, console.Prompt+
					"\nA velocity of i is:\n\n"+
					"Warp Factor: None\n"+
					"Percent Impulse: 100.0 %\n")
			})
		})

		Convey("When input ends without a newline", func() {
			out := run("0.5i")

			Convey("Then the line is still evaluated", func() {
				So(out, ShouldEndWith, "Percent Impulse: 50.0 %\n")
			})
		})

		Convey("When a Windows line ending is used", func() {
			out := run("1c\r\n")

			Convey("Then the carriage return is not echoed", func() {
				So(out, ShouldContainSubstring, "A velocity of 1c is:")
				So(out, ShouldContainSubstring, "Warp Factor: 1.0\n")
			})
		})

		Convey("When only the first line should be read", func() {
			out := run("2i\n10000c\n")

			Convey("Then later lines are ignored", func() {
				So(out, ShouldEndWith, "Percent Impulse: 200.0 %\n")
			})
		})

		Convey("When a custom none marker is configured", func() {
			out := run("c\n", console.WithNoneMarker("n/a"))

			Convey("Then it replaces the default marker", func() {
				So(out, ShouldEndWith, "Warp Factor: 1.0\nPercent Impulse: n/a\n")
			})
		})
	})
}

func TestConsole_Errors(t *testing.T) {
	Convey("Given the console", t, func() {
		Convey("When the unit is not recognised", func() {
			out := run("50 banana\n")

			Convey("Then only the error line follows the prompt", func() {
				So(out, ShouldEqual, console.Prompt+"Error: A valid unit was not entered!\n")
			})
		})

		Convey("When the magnitude is not a number", func() {
			out := run("abckph\n")

			Convey("Then the offending text is reported", func() {
				So(out, ShouldEqual, console.Prompt+"Error: could not convert string to float: 'abc'\n")
			})
		})

		Convey("When the velocity exceeds warp 10", func() {
			out := run("10000c\n")

			Convey("Then no readings are printed", func() {
				So(out, ShouldEqual, console.Prompt+"Error: Entered velocity exceeds Warp Drive theoretical limits!\n")
				So(out, ShouldNotContainSubstring, "Warp Factor")
			})
		})

		Convey("When input is empty", func() {
			out := run("")

			Convey("Then it is treated as a missing unit", func() {
				So(out, ShouldEndWith, "Error: A valid unit was not entered!\n")
			})
		})
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

type fixedEvaluator struct{}

func (fixedEvaluator) Evaluate(context.Context, string) (service.Result, error) {
	return service.Result{}, errors.New("unreachable")
}

func TestConsole_WriteFailure(t *testing.T) {
	Convey("Given an output that cannot be written", t, func() {
		c := console.New(fixedEvaluator{})

		Convey("When running", func() {
			err := c.Run(context.Background(), strings.NewReader("1c\n"), failingWriter{})

			Convey("Then the write error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
