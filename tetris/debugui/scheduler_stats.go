package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// sortSystems orders systems by the given table column.
func sortSystems(systems []tetris.SystemStats, column int, descending bool) {
	sort.SliceStable(systems, func(i, j int) bool {
		left := systems[i]
		right := systems[j]

		var less bool
		switch column {
		case 0:
			less = left.Name < right.Name
		case 1:
			less = left.ExecutionCount < right.ExecutionCount
		case 2:
			less = left.AvgDuration < right.AvgDuration
		case 3:
			less = left.MinDuration < right.MinDuration
		case 4:
			less = left.MaxDuration < right.MaxDuration
		}

		if descending {
			return !less
		}
		return less
	})
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}

// SchedulerWindow returns a window with a sortable per-system timing table.
func SchedulerWindow(s *tetris.Session) func() {
	return func() {
		stats := s.SchedulerStats()

		imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(420, 220), imgui.CondOnce)

		if !imgui.BeginV("System Performance", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		imgui.Text(fmt.Sprintf("System Count: %d", stats.SystemCount))
		imgui.Separator()

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			systems := stats.Systems
			if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsCount() > 0 {
				spec := sortSpecs.Specs()
				sortSystems(systems, int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
			}

			for _, sys := range systems {
				imgui.TableNextRow()

				imgui.TableNextColumn()
				imgui.Text(sys.Name)

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))

				imgui.TableNextColumn()
				imgui.Text(millis(sys.AvgDuration))

				imgui.TableNextColumn()
				imgui.Text(millis(sys.MinDuration))

				imgui.TableNextColumn()
				imgui.Text(millis(sys.MaxDuration))
			}
			imgui.EndTable()
		}

		imgui.End()
	}
}
