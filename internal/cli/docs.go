package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	builtindocs "github.com/plzcli/plz/docs"
	"github.com/plzcli/plz/internal/ui"
)

const docsDir = "guide"

type docsTopic struct {
	ID    string
	Title string
	Path  string
}

var docsStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Browse the bundled guide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			topics, err := loadDocsTopics()
			if err != nil {
				return err
			}
			if len(argv) == 0 {
				listDocsTopics(topics)
				return nil
			}
			return showDocsTopic(topics, argv[0])
		},
	}
}

func loadDocsTopics() ([]docsTopic, error) {
	entries, err := fs.ReadDir(builtindocs.FS, docsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled docs: %w", err)
	}

	var topics []docsTopic
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		fsPath := path.Join(docsDir, entry.Name())
		source, err := fs.ReadFile(builtindocs.FS, fsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read bundled docs: %w", err)
		}
		id := topicID(entry.Name())
		title := firstHeading(source)
		if title == "" {
			title = id
		}
		topics = append(topics, docsTopic{ID: id, Title: title, Path: fsPath})
	}

	// Filenames carry a numeric ordering prefix, so path order is read order.
	sort.Slice(topics, func(i, j int) bool { return topics[i].Path < topics[j].Path })
	return topics, nil
}

// topicID strips the ordering prefix and extension: "01-getting-started.md"
// becomes "getting-started".
func topicID(name string) string {
	id := strings.TrimSuffix(name, ".md")
	if i := strings.Index(id, "-"); i > 0 {
		if _, err := strconv.Atoi(id[:i]); err == nil {
			id = id[i+1:]
		}
	}
	return id
}

// firstHeading returns the text of the document's first level-1 heading.
func firstHeading(source []byte) string {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			return string(heading.Text(source))
		}
	}
	return ""
}

func listDocsTopics(topics []docsTopic) {
	fmt.Println(ui.Header("Guide topics"))
	fmt.Println()
	rows := make([][]string, 0, len(topics))
	for _, topic := range topics {
		rows = append(rows, []string{topic.ID, topic.Title})
	}
	fmt.Print(ui.RenderColumns(rows))
	fmt.Println()
	fmt.Println(ui.Hint("Run 'plz docs <topic>' to read one."))
}

func showDocsTopic(topics []docsTopic, id string) error {
	for _, topic := range topics {
		if topic.ID != id && strings.TrimSuffix(path.Base(topic.Path), ".md") != id {
			continue
		}
		source, err := fs.ReadFile(builtindocs.FS, topic.Path)
		if err != nil {
			return fmt.Errorf("failed to read bundled docs: %w", err)
		}
		if !docsStdoutIsTerminal() {
			fmt.Print(string(source))
			return nil
		}
		rendered, err := ui.RenderMarkdown(string(source), ui.TerminalWidth())
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	}
	return fmt.Errorf("no guide topic %q; run 'plz docs' to list topics", id)
}
