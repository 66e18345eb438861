package tools

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
)

const defaultMaxReadBytes = 1 << 20

// ReadFileTool reads file content with an optional line range
type ReadFileTool struct {
	root     string
	maxBytes int64
}

// NewReadFileTool creates the read_file executor
func NewReadFileTool(cfg config.ToolsConfig) *ReadFileTool {
	maxBytes := cfg.MaxReadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxReadBytes
	}
	return &ReadFileTool{root: cfg.WorkspaceRoot, maxBytes: maxBytes}
}

func (t *ReadFileTool) Name() string { return "read_file" }

func (t *ReadFileTool) Effect() domain.Effect { return domain.EffectReadOnly }

// Definition returns the tool definition for the model
func (t *ReadFileTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        t.Name(),
		Description: "Read file content from the workspace with an optional line range",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "The path to the file to read",
				},
				"start_line": map[string]any{
					"type":        "integer",
					"description": "Starting line number (1-indexed, optional)",
					"minimum":     1,
				},
				"end_line": map[string]any{
					"type":        "integer",
					"description": "Ending line number (1-indexed, optional)",
					"minimum":     1,
				},
			},
			"required": []string{"file_path"},
		},
	}
}

// Execute reads the requested file
func (t *ReadFileTool) Execute(ctx context.Context, req domain.ToolCallRequest) (*domain.ToolResult, error) {
	raw, err := firstStringArg(req.Args, "file_path", "path")
	if err != nil {
		return nil, err
	}
	startLine, hasStart, err := intArg(req.Args, "start_line")
	if err != nil {
		return nil, err
	}
	endLine, hasEnd, err := intArg(req.Args, "end_line")
	if err != nil {
		return nil, err
	}
	if hasStart && startLine < 1 {
		return nil, fmt.Errorf("start_line must be >= 1")
	}
	if hasStart && hasEnd && endLine < startLine {
		return nil, fmt.Errorf("end_line must be >= start_line")
	}

	path, err := resolvePath(t.root, raw)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", raw, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", raw)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", raw, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, t.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", raw, err)
	}
	truncated := info.Size() > t.maxBytes

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	content := string(data)
	if hasStart || hasEnd {
		content = sliceLines(data, startLine, endLine)
	}
	if truncated {
		content += fmt.Sprintf("\n[truncated: file is %d bytes, read limit is %d]", info.Size(), t.maxBytes)
	}

	return &domain.ToolResult{
		Output: content,
		Data: map[string]any{
			"file_path": path,
			"size":      info.Size(),
			"truncated": truncated,
		},
	}, nil
}

// sliceLines returns lines start..end (1-indexed, inclusive); zero means open
func sliceLines(data []byte, start, end int) string {
	if start < 1 {
		start = 1
	}

	var out strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	line := 0
	for scanner.Scan() {
		line++
		if line < start {
			continue
		}
		if end > 0 && line > end {
			break
		}
		out.WriteString(scanner.Text())
		out.WriteByte('\n')
	}
	return out.String()
}
