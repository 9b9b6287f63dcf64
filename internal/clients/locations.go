package clients

import "path/filepath"

// candidatePath is a config file location before probing fills in
// existence and writability.
type candidatePath struct {
	label string
	path  string
}

// candidatePaths computes the per-OS candidate config file paths for a
// client kind. The set differs by OS family: Windows roots under
// APPDATA, macOS under Library/Application Support, Linux under XDG and
// dotfile conventions. home and appData are injected so tests can probe
// a scratch tree.
func candidatePaths(kind Kind, goos, home, appData string) []candidatePath {
	switch kind {
	case KindClaudeDesktop:
		switch goos {
		case "windows":
			if appData == "" {
				return nil
			}
			return []candidatePath{
				{"Claude Desktop (AppData)", filepath.Join(appData, "Claude", "claude_desktop_config.json")},
			}
		case "darwin":
			return []candidatePath{
				{"Claude Desktop (macOS)", filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")},
			}
		default:
			return []candidatePath{
				{"Claude Desktop (XDG)", filepath.Join(home, ".config", "claude", "claude_desktop_config.json")},
				{"Claude Desktop (Local)", filepath.Join(home, ".claude", "claude_desktop_config.json")},
			}
		}

	case KindStandardMCP:
		return []candidatePath{
			{"MCP Config (Home)", filepath.Join(home, ".mcp", "config.json")},
			{"MCP Config (XDG)", filepath.Join(home, ".config", "mcp", "config.json")},
		}

	case KindCline:
		if goos == "windows" {
			if appData == "" {
				return nil
			}
			return []candidatePath{
				{"Cline (VS Code)", filepath.Join(appData, "Code", "User", "globalStorage", "saoudrizwan.claude-dev", "config.json")},
			}
		}
		return []candidatePath{
			{"Cline (VS Code)", filepath.Join(home, ".vscode", "extensions", "claude-dev", "config.json")},
			{"Cline (User)", filepath.Join(home, ".config", "Code", "User", "globalStorage", "saoudrizwan.claude-dev", "config.json")},
		}

	case KindCursor:
		if goos == "windows" {
			if appData == "" {
				return nil
			}
			return []candidatePath{
				{"Cursor (AppData)", filepath.Join(appData, "Cursor", "User", "settings.json")},
			}
		}
		return []candidatePath{
			{"Cursor (Config)", filepath.Join(home, ".cursor", "settings.json")},
			{"Cursor (XDG)", filepath.Join(home, ".config", "Cursor", "User", "settings.json")},
		}

	case KindContinue:
		return []candidatePath{
			{"Continue (VS Code)", filepath.Join(home, ".continue", "config.json")},
			{"Continue (XDG)", filepath.Join(home, ".config", "continue", "config.json")},
		}
	}

	return nil
}
