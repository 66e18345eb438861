package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// WriteFileTool creates or overwrites a file
type WriteFileTool struct {
	root string
}

// NewWriteFileTool creates the write_file executor
func NewWriteFileTool(cfg config.ToolsConfig) *WriteFileTool {
	return &WriteFileTool{root: cfg.WorkspaceRoot}
}

func (t *WriteFileTool) Name() string { return "write_file" }

func (t *WriteFileTool) Effect() domain.Effect { return domain.EffectMutating }

// Definition returns the tool definition for the model
func (t *WriteFileTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        t.Name(),
		Description: "Write content to a file, creating parent directories as needed",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "The path of the file to write",
				},
				"content": map[string]any{
					"type":        "string",
					"description": "The full file content",
				},
			},
			"required": []string{"file_path", "content"},
		},
	}
}

// Execute writes the file
func (t *WriteFileTool) Execute(ctx context.Context, req domain.ToolCallRequest) (*domain.ToolResult, error) {
	raw, err := firstStringArg(req.Args, "file_path", "path")
	if err != nil {
		return nil, err
	}
	content, err := stringArg(req.Args, "content", false)
	if err != nil {
		return nil, err
	}
	if _, ok := req.Args["content"]; !ok {
		return nil, fmt.Errorf("missing required parameter: content")
	}

	path, err := resolvePath(t.root, raw)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}

	_, statErr := os.Stat(path)
	created := os.IsNotExist(statErr)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", raw, err)
	}

	verb := "Updated"
	if created {
		verb = "Created"
	}
	return &domain.ToolResult{
		Output: fmt.Sprintf("%s %s (%d bytes)", verb, raw, len(content)),
		Data:   map[string]any{"file_path": path, "bytes": len(content), "created": created, "approved": domain.IsToolApproved(ctx)},
	}, nil
}
