package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhabedank/referat/internal/core"
)

// Writer collects blocks in order and renders them to a file on Save.
// It implements core.DocumentWriter.
type Writer struct {
	path    string
	adapter Adapter
	styles  StyleSheet
	blocks  []Block
}

// NewWriter creates a writer for path using adapter.
func NewWriter(path string, adapter Adapter) *Writer {
	return &Writer{
		path:    path,
		adapter: adapter,
		styles:  DefaultStyles(),
	}
}

// Open creates a writer whose adapter is chosen by the extension of path.
// It has the signature of core.WriterFactory.
func Open(path string) (core.DocumentWriter, error) {
	adapter, err := AdapterForPath(path)
	if err != nil {
		return nil, err
	}
	return NewWriter(path, adapter), nil
}

func (w *Writer) AddHeading(text string, level int) {
	w.blocks = append(w.blocks, Block{
		Kind:  BlockHeading,
		Text:  text,
		Level: level,
		Style: HeadingStyleName(level),
	})
}

// AddParagraph appends a paragraph. Unknown style names fall back to the body style.
func (w *Writer) AddParagraph(text, style string) {
	w.blocks = append(w.blocks, Block{
		Kind:  BlockParagraph,
		Text:  text,
		Style: w.styles.Resolve(style).Name,
	})
}

func (w *Writer) AddPageBreak() {
	w.blocks = append(w.blocks, Block{Kind: BlockPageBreak})
}

// Blocks returns the blocks added so far.
func (w *Writer) Blocks() []Block {
	return w.blocks
}

// Path returns the destination file.
func (w *Writer) Path() string {
	return w.path
}

// Save renders into a temporary file next to the destination and renames it
// into place, so a failed save never leaves a partial document behind.
func (w *Writer) Save() error {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := w.adapter.Render(tmp, w.blocks, w.styles); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to render %s: %w", w.adapter.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
