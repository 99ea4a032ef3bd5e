package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentConfig struct {
	ID       int64  `parquet:"id"`
	Strategy string `parquet:"strategy,dict"`
	Depth    int32  `parquet:"depth"`
	UseCache bool   `parquet:"use_cache"`
	Prune    bool   `parquet:"prune"`
	BudgetMs int64  `parquet:"budget_ms"`
	Episodes int64  `parquet:"episodes"`
	Seed     int64  `parquet:"seed"`
}

type GameRecord struct {
	ID          int64   `parquet:"id"`
	Agent0      int64   `parquet:"agent0"` // AgentConfig.ID
	Agent1      int64   `parquet:"agent1"` // AgentConfig.ID
	Winner      int32   `parquet:"winner"` // -1 for a draw
	StartTimeMs int64   `parquet:"start_time_ms"`
	EndTimeMs   int64   `parquet:"end_time_ms"`
	DurationMs  float64 `parquet:"duration_ms"`
	Turns       int32   `parquet:"turns"`
	TurnLimit   bool    `parquet:"turn_limit"`
	TotalMoves  int32   `parquet:"total_moves"`
}

type MoveRecord struct {
	Game         int64   `parquet:"game"` // GameRecord.ID
	Turn         int32   `parquet:"turn"`
	Player       int32   `parquet:"player"`
	Action       string  `parquet:"action,dict"`
	Predicted    string  `parquet:"predicted,dict"`
	Value        float64 `parquet:"value"`
	Replaced     bool    `parquet:"replaced"`
	DurationMs   float64 `parquet:"duration_ms"`
	Episodes     int64   `parquet:"episodes"`
	FullPlayouts int64   `parquet:"full_playouts"`
	Nodes        int64   `parquet:"nodes"`
	CacheHits    int64   `parquet:"cache_hits"`
	Prunes       int64   `parquet:"prunes"`
	TreeSize     int64   `parquet:"tree_size"`
	IsTreeReused bool    `parquet:"is_tree_reused"`
}

func NewGameRecord(id, agent0, agent1 int, metric GameMetric) GameRecord {
	return GameRecord{
		ID:          int64(id),
		Agent0:      int64(agent0),
		Agent1:      int64(agent1),
		Winner:      int32(metric.Winner),
		StartTimeMs: metric.StartTime.UnixMilli(),
		EndTimeMs:   metric.EndTime.UnixMilli(),
		DurationMs:  milliseconds(metric.Duration),
		Turns:       int32(metric.Turns),
		TurnLimit:   metric.TurnLimit,
		TotalMoves:  int32(metric.TotalMoves),
	}
}

func NewMoveRecord(game int, metric MoveMetric) MoveRecord {
	return MoveRecord{
		Game:         int64(game),
		Turn:         int32(metric.Turn),
		Player:       int32(metric.Player),
		Action:       metric.Action.String(),
		Predicted:    metric.Predicted.String(),
		Value:        metric.Value,
		Replaced:     metric.Replaced,
		DurationMs:   milliseconds(metric.Duration),
		Episodes:     metric.Episodes,
		FullPlayouts: metric.FullPlayouts,
		Nodes:        metric.Nodes,
		CacheHits:    metric.CacheHits,
		Prunes:       metric.Prunes,
		TreeSize:     int64(metric.TreeSize),
		IsTreeReused: metric.IsTreeReused,
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> for the files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return writeParquet(filepath.Join(w.baseDir, "agent_configs.parquet"), configs, "agent_config_v1")
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return writeParquet(filepath.Join(w.baseDir, "game_records.parquet"), records, "game_record_v1")
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	return writeParquet(filepath.Join(w.baseDir, "move_records.parquet"), records, "move_record_v1")
}

// writeParquet writes to a temporary file and renames it so readers never see a partial file.
func writeParquet[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
