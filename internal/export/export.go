// Package export writes the code block backup file.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
)

// FileName is the name of the backup written into the export directory.
const FileName = "codeblocks_backup.json"

// Marshal encodes blocks as a two-space indented JSON array with a trailing
// newline. A nil slice encodes as an empty array.
func Marshal(blocks []codeblock.CodeBlock) ([]byte, error) {
	if blocks == nil {
		blocks = []codeblock.CodeBlock{}
	}
	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return append(data, '\n'), nil
}

// Write stores blocks as dir/FileName, creating dir when needed, and returns
// the written path.
func Write(dir string, blocks []codeblock.CodeBlock) (string, error) {
	return WriteFile(filepath.Join(dir, FileName), blocks)
}

// WriteFile stores blocks at path.
func WriteFile(path string, blocks []codeblock.CodeBlock) (string, error) {
	data, err := Marshal(blocks)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}
