// Package console is the line-oriented terminal the operator talks to:
// prompts, numeric menu choices and tabular result sets.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Domenick1991/airops/internal/database"
)

// ErrEndOfInput is returned once the input stream is exhausted.
var ErrEndOfInput = errors.New("end of input")

const (
	choicePrompt  = "Please make your choice: "
	invalidChoice = "Your input is invalid!"
	maxLineBytes  = 1024 * 1024
)

type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return &Console{in: scanner, out: out}
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Prompt prints prompt without a newline and returns the next input line
// with its line ending removed.
func (c *Console) Prompt(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(c.out)
		return "", ErrEndOfInput
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

// ReadChoice asks until the operator enters an integer.
func (c *Console) ReadChoice() (int, error) {
	for {
		line, err := c.Prompt(choicePrompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.Println(invalidChoice)
			continue
		}
		return n, nil
	}
}

// PrintTable writes the column header and every row aligned in columns, and
// returns the number of rows printed.
func (c *Console) PrintTable(res *database.Result) int {
	if res.Empty() {
		return 0
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
	return len(res.Rows)
}
