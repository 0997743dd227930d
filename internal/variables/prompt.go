package variables

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/plzcli/plz/internal/config"
	"github.com/plzcli/plz/internal/ui"
)

// TerminalPrompter asks the user for variable values on the controlling
// terminal. Prompting without a terminal fails instead of hanging, so
// scripted invocations get a clear error.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stdin and writes to stderr, leaving stdout
// for the command's own output.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Prompt asks for a value. With options it renders a numbered select and
// retries until a valid choice; otherwise it reads one free-text line.
func (p *TerminalPrompter) Prompt(spec *config.PromptSpec, key string) (string, error) {
	if !isatty.IsTerminal(p.In.Fd()) {
		return "", fmt.Errorf("variable %q needs a terminal to prompt; pass it as an argument instead", key)
	}

	message := spec.Message
	if message == "" {
		message = fmt.Sprintf("Enter a value for %s:", key)
	}

	reader := bufio.NewReader(p.In)

	if len(spec.Options) > 0 {
		fmt.Fprintln(p.Out, message)
		for i, option := range spec.Options {
			fmt.Fprintf(p.Out, "  %d) %s\n", i+1, option)
		}
		for {
			fmt.Fprintf(p.Out, "Select an option %s ", ui.Hint(fmt.Sprintf("[1-%d]", len(spec.Options))))
			line, err := reader.ReadString('\n')
			if err != nil {
				return "", err
			}
			choice, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil && choice >= 1 && choice <= len(spec.Options) {
				return spec.Options[choice-1], nil
			}
		}
	}

	fmt.Fprintf(p.Out, "%s ", message)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
