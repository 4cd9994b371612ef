package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Frames   int64
	Step     time.Duration
	Seed     uint64
	Settings tetris.Settings

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	Games          int
	BestScore      int
	TotalScore     int
	TotalLines     int
	Pieces         [tetris.KindCount]int
	Clears         [tetris.MaxLinesPerClear + 1]int
	Scheduler      tetris.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats accumulates durations without keeping every sample.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
	Count int64
}

func (s *Stats) Add(sample time.Duration) {
	if s.Count == 0 || sample < s.Min {
		s.Min = sample
	}
	if sample > s.Max {
		s.Max = sample
	}
	s.Total += sample
	s.Count++
}

func (s Stats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// recordGame folds a session's counters into the totals. Only finished games count
// towards Games and BestScore.
func (r *Report) recordGame(session *tetris.Session, finished bool) {
	tally := session.Tally()
	for _, k := range tetris.Kinds {
		r.Pieces[k] += tally.Pieces(k)
	}
	for lines := 1; lines <= tetris.MaxLinesPerClear; lines++ {
		r.Clears[lines] += tally.Clears(lines)
	}
	r.TotalLines += session.Lines()
	r.TotalScore += session.Score()

	if finished {
		r.Games++
		r.BestScore = max(r.BestScore, session.Score())
	}
}

func (r *Report) TotalPieces() int {
	total := 0
	for _, n := range r.Pieces {
		total += n
	}
	return total
}

type PieceRow struct {
	Kind  tetris.Kind
	Count int
	Share float64
}

// PieceRows lists the lock count and share of every kind.
func (r *Report) PieceRows() []PieceRow {
	total := r.TotalPieces()
	rows := make([]PieceRow, 0, tetris.KindCount)
	for _, k := range tetris.Kinds {
		row := PieceRow{Kind: k, Count: r.Pieces[k]}
		if total > 0 {
			row.Share = 100 * float64(row.Count) / float64(total)
		}
		rows = append(rows, row)
	}
	return rows
}

type ClearRow struct {
	Lines int
	Count int
}

func (r *Report) ClearRows() []ClearRow {
	rows := make([]ClearRow, 0, tetris.MaxLinesPerClear)
	for lines := 1; lines <= tetris.MaxLinesPerClear; lines++ {
		rows = append(rows, ClearRow{Lines: lines, Count: r.Clears[lines]})
	}
	return rows
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Run Configuration
- **Run Duration:** {{.Duration}}
- **Frame Limit:** {{if .Frames}}{{.Frames}}{{else}}none{{end}}
- **Frame Step:** {{.Step}}
- **Seed:** {{.Seed}}
- **Shift Delay / Interval:** {{.Settings.ShiftDelay}} / {{.Settings.ShiftInterval}}
- **Drop Interval:** {{.Settings.DropInterval}}
- **Lookahead:** {{.Settings.Lookahead}}

## Game Results
- **Total Updates:** {{.TotalUpdates}} ({{.Scheduler.HaltedFrames}} halted by hard drop)
- **Simulated Time:** {{.SimulatedTime}}
- **Wall Time:** {{.TotalTime}}
- **Finished Games:** {{.Games}}
- **Best Score:** {{.BestScore}}
- **Total Score:** {{.TotalScore}}
- **Lines Cleared:** {{.TotalLines}}
- **Pieces Locked:** {{.TotalPieces}}

### Piece Distribution
| Kind | Locked | Share |
|------|--------|-------|
{{range .PieceRows}}| {{.Kind}} | {{.Count}} | {{printf "%.2f" .Share}}% |
{{end}}
### Line Clears
| Lines | Clears |
|-------|--------|
{{range .ClearRows}}| {{.Lines}} | {{.Count}} |
{{end}}
## Performance Results
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

### Systems
| System | Runs | Avg | Min | Max | Total |
|--------|------|-----|-----|-----|-------|
{{range .Scheduler.Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} ({{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MiB)
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
