package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	ignore "github.com/sabhiram/go-gitignore"
)

// ListDirectoryTool lists the entries of a directory, honoring the
// workspace .gitignore
type ListDirectoryTool struct {
	root string
}

// NewListDirectoryTool creates the list_directory executor
func NewListDirectoryTool(cfg config.ToolsConfig) *ListDirectoryTool {
	return &ListDirectoryTool{root: cfg.WorkspaceRoot}
}

func (t *ListDirectoryTool) Name() string { return "list_directory" }

func (t *ListDirectoryTool) Effect() domain.Effect { return domain.EffectReadOnly }

// Definition returns the tool definition for the model
func (t *ListDirectoryTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        t.Name(),
		Description: "List files and directories; directories end with a slash",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"dir_path": map[string]any{
					"type":        "string",
					"description": "Directory to list (defaults to the workspace root)",
				},
				"show_hidden": map[string]any{
					"type":        "boolean",
					"description": "Include dotfiles",
					"default":     false,
				},
			},
		},
	}
}

// Execute lists the directory
func (t *ListDirectoryTool) Execute(ctx context.Context, req domain.ToolCallRequest) (*domain.ToolResult, error) {
	raw, err := firstStringArg(req.Args, "dir_path", "path")
	if err != nil {
		raw = "."
	}
	showHidden, _ := req.Args["show_hidden"].(bool)

	dir, err := resolvePath(t.root, raw)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", raw, err)
	}

	matcher := t.gitignore()
	root, _ := resolvePath(t.root, ".")

	var names []string
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		name := e.Name()
		if name == ".git" || (!showHidden && strings.HasPrefix(name, ".")) {
			continue
		}
		if matcher != nil {
			if rel, err := filepath.Rel(root, filepath.Join(dir, name)); err == nil && !strings.HasPrefix(rel, "..") {
				rel = filepath.ToSlash(rel)
				if e.IsDir() {
					rel += "/"
				}
				if matcher.MatchesPath(rel) {
					continue
				}
			}
		}
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &domain.ToolResult{
		Output: strings.Join(names, "\n"),
		Data:   map[string]any{"dir_path": dir, "entries": len(names)},
	}, nil
}

func (t *ListDirectoryTool) gitignore() *ignore.GitIgnore {
	root, err := resolvePath(t.root, ".")
	if err != nil {
		return nil
	}
	m, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return m
}
