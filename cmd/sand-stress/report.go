package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/sandfall/ecs"
	"github.com/plus3/sandfall/sand"
	"gonum.org/v1/gonum/stat"
)

type Report struct {
	// Configuration
	Ticks         int
	Seed          uint64
	Width, Height int

	// Results
	Games          int
	Locks          int
	Clears         int
	GrainsCleared  int
	LongestGame    uint64
	TotalTime      time.Duration
	UpdateTime     Stats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// record adds a finished (or interrupted) session to the totals.
func (r *Report) record(s *sand.Session) {
	r.Games++
	r.Locks += s.Locks
	r.Clears += s.Clear.Clears
	r.GrainsCleared += s.Clear.GrainsCleared
	r.LongestGame = max(r.LongestGame, s.Tick)
}

type Stats struct {
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration
	P50    time.Duration
	P99    time.Duration

	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := make([]float64, len(s.Samples))
	for i, sample := range s.Samples {
		sorted[i] = float64(sample)
	}
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	s.Min = time.Duration(sorted[0])
	s.Max = time.Duration(sorted[len(sorted)-1])
	s.Mean = time.Duration(mean)
	s.StdDev = time.Duration(std)
	s.P50 = time.Duration(stat.Quantile(0.5, stat.Empirical, sorted, nil))
	s.P99 = time.Duration(stat.Quantile(0.99, stat.Empirical, sorted, nil))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Sand Stress Test Report

## Test Configuration
- **Ticks:** {{.Ticks}}
- **Seed:** {{.Seed}}
- **Field:** {{.Width}}x{{.Height}} grains

## Gameplay
- **Games:** {{.Games}}
- **Pieces Locked:** {{.Locks}}
- **Clears:** {{.Clears}} ({{.GrainsCleared}} grains)
- **Longest Game:** {{.LongestGame}} ticks

## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Mean:** {{.UpdateTime.Mean}} (σ {{.UpdateTime.StdDev}})
  - **P50:** {{.UpdateTime.P50}}
  - **P99:** {{.UpdateTime.P99}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
| System | Runs | Avg | Max |
|--------|------|-----|-----|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Heap In Use:** {{.MemStatsEnd.HeapInuse | mb}} MB
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
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
