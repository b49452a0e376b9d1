// Package console is the interactive front end: it prompts for one velocity,
// evaluates it and prints the readings.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	service "github.com/okian/warp/internal/app"
)

// Prompt is written before reading the velocity.
const Prompt = "Enter velocity in m/s, fpm, mph, kph, or kts and include the units (e.g. 100 kph): "

const defaultNoneMarker = "None"

// Evaluator evaluates a single raw velocity.
type Evaluator interface {
	Evaluate(ctx context.Context, raw string) (service.Result, error)
}

// Console reads one velocity from in and writes the outcome to out.
type Console struct {
	eval       Evaluator
	noneMarker string
}

// Option applies a configuration option to the Console.
type Option func(*Console)

// WithNoneMarker sets the text printed for a reading that does not apply.
func WithNoneMarker(marker string) Option {
	return func(c *Console) {
		if marker != "" {
			c.noneMarker = marker
		}
	}
}

// New creates a Console backed by eval.
func New(eval Evaluator, opts ...Option) *Console {
	c := &Console{eval: eval, noneMarker: defaultNoneMarker}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run prompts once, evaluates the line read and prints either the readings
// or a single "Error: " line. Evaluation errors are printed, not returned;
// only failures to read or write are returned.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)

	if _, err := w.WriteString(Prompt); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	line, err := readLine(in)
	if err != nil {
		return err
	}

	res, err := c.eval.Evaluate(ctx, line)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", err)
		return w.Flush()
	}

	fmt.Fprintf(w, "\n%s\n\n", res.Input.Describe())
	fmt.Fprintf(w, "Warp Factor: %s\n", formatReading(res.Warp, c.noneMarker))
	if res.Impulse.OK {
		fmt.Fprintf(w, "Percent Impulse: %s %%\n", formatReading(res.Impulse, c.noneMarker))
	} else {
		fmt.Fprintf(w, "Percent Impulse: %s\n", c.noneMarker)
	}
	return w.Flush()
}

// readLine reads up to the first newline. End of input without a newline
// yields whatever was read, possibly the empty string.
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
