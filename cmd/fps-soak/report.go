package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/fpsproto/game"
)

type Report struct {
	// Configuration
	Session   string
	Duration  time.Duration
	Step      time.Duration
	FireEvery int
	Lifetime  time.Duration

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	Projectiles    game.ProjectileStats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Bounded reports whether live projectiles stayed within what the fire rate and lifetime allow.
func (r *Report) Bounded() bool {
	if r.FireEvery <= 0 || r.Step <= 0 {
		return r.Projectiles.Peak == 0
	}
	framesAlive := int(r.Lifetime/r.Step) + 1
	return r.Projectiles.Peak <= framesAlive/max(r.FireEvery, 2)+1
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Projectile Soak Report

## Run Configuration
- **Session:** {{.Session}}
- **Run Duration:** {{.Duration}}
- **Simulated Step:** {{.Step}}
- **Fire Cadence:** every {{.FireEvery}} frames
- **Projectile Lifetime:** {{.Lifetime}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Run Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Projectiles
- **Spawned:** {{.Projectiles.Spawned}}
- **Despawned:** {{.Projectiles.Despawned}} (expired {{.Projectiles.Expired}}, out of bounds {{.Projectiles.OutOfArea}}, hit {{.Projectiles.Hit}})
- **Live at End:** {{.Projectiles.Live}}
- **Peak Live:** {{.Projectiles.Peak}}
- **Bounded:** {{if .Bounded}}yes{{else}}NO{{end}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{mb (bsub .MemStatsEnd.Sys .MemStatsStart.Sys)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

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
