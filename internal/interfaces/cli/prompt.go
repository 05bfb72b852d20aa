package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineConfirmer asks a question and reads the answer from a line of input.
// Only "y" (any case, surrounding blanks ignored) counts as yes.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a confirmer reading answers from in and writing
// prompts to out
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintln(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}

// AutoConfirmer answers yes to everything
type AutoConfirmer struct {
	out io.Writer
}

// NewAutoConfirmer creates a confirmer that echoes each prompt with a "y"
func NewAutoConfirmer(out io.Writer) *AutoConfirmer {
	return &AutoConfirmer{out: out}
}

func (c *AutoConfirmer) Confirm(prompt string) (bool, error) {
	if c.out != nil {
		fmt.Fprintf(c.out, "%s y\n", prompt)
	}
	return true, nil
}
