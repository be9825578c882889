package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// BlockKind identifies a document block.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockPageBreak
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockPageBreak:
		return "page_break"
	default:
		return "unknown"
	}
}

// Block is one entry of a document in reading order.
type Block struct {
	Kind  BlockKind
	Text  string
	Level int    // headings only
	Style string // resolved style name; empty for page breaks
}

// Adapter is the interface all output adapters must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Extension returns the file extension the adapter writes, with the dot.
	Extension() string

	// Render writes blocks to w using the given styles.
	Render(w io.Writer, blocks []Block, styles StyleSheet) error
}

// Formats lists the supported output formats.
var Formats = []string{"docx", "md", "html", "json"}

// AdapterForFormat returns the adapter for a format name.
func AdapterForFormat(format string) (Adapter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "docx":
		return NewDocxAdapter(), nil
	case "md", "markdown":
		return NewMarkdownAdapter(), nil
	case "html", "htm":
		return NewHTMLAdapter(), nil
	case "json":
		return NewJSONAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// AdapterForPath picks the adapter from the file extension of path.
func AdapterForPath(path string) (Adapter, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("output path %q has no extension", path)
	}
	return AdapterForFormat(ext)
}
