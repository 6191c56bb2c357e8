package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/questfolio.yaml
var defaultAppYAML []byte

// Default returns the hardcoded configuration used when no file can be read.
func Default() AppConfig {
	return AppConfig{
		Game: GameConfig{
			GridSize:       20,
			CellSize:       1,
			TickInterval:   200 * time.Millisecond,
			StartSnake:     []Point{{X: 10, Y: 10}},
			StartDirection: "right",
			StartFood:      Point{X: 15, Y: 15},
		},
		Progress: ProgressConfig{
			ExpPerFood:  5,
			ExpPerLevel: 100,
			StartLevel:  1,
		},
		UI: UIConfig{
			LoadingDuration: 3 * time.Second,
			PopupDuration:   3 * time.Second,
		},
		Storage: StorageConfig{
			Path: "~/.questfolio/questfolio.db",
		},
		Server: ServerConfig{
			SSHAddress:  ":23234",
			HostKeyPath: ".ssh/questfolio_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
