package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/units"
)

var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	b, err := jsonMarshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(b))
	return err
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(stdout, "no results")
		return
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func edgeMarks(p domain.Panel) string {
	marks := []byte("----")
	for i, on := range []bool{p.EdgeL1, p.EdgeL2, p.EdgeW1, p.EdgeW2} {
		if on {
			marks[i] = "LLWW"[i]
		}
	}
	return string(marks)
}

func printProjects(items []domain.Project) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			item.Name,
			item.Client,
			item.Unit,
			formatTime(item.UpdatedAt),
		})
	}
	printTable([]string{"ID", "NAME", "CLIENT", "UNIT", "UPDATED_AT"}, rows)
}

func printProject(item domain.Project) {
	printKV([][2]string{
		{"id", uintToString(item.ID)},
		{"name", item.Name},
		{"client", item.Client},
		{"unit", item.Unit},
		{"created_at", formatTime(item.CreatedAt)},
		{"updated_at", formatTime(item.UpdatedAt)},
	})
}

func printStandards(items []domain.Standard) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			item.Category,
			item.Material,
			item.Brand,
			formatFloat(item.ThicknessMM),
			item.Finish,
			formatFloat(item.RatePerSqft),
			formatFloat(item.RatePerUnit),
			formatFloat(item.EdgeBandMM),
		})
	}
	printTable([]string{"ID", "CATEGORY", "MATERIAL", "BRAND", "THK_MM", "FINISH", "RATE/SQFT", "RATE/UNIT", "BAND_MM"}, rows)
}

func printModules(items []domain.Module, unit string) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			strconv.Itoa(item.PositionIndex),
			item.Name,
			item.ModuleType,
			item.Zone,
			units.FormatDimension(item.WidthMM, unit),
			units.FormatDimension(item.HeightMM, unit),
			units.FormatDimension(item.DepthMM, unit),
			fmt.Sprintf("%d/%d/%d", item.DoorCount, item.DrawerCount, item.ShelfCount),
		})
	}
	printTable([]string{"ID", "POS", "NAME", "TYPE", "ZONE", "W", "H", "D", "DOORS/DRAWERS/SHELVES"}, rows)
}

func printCutList(items []domain.Panel, unit string) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			strconv.Itoa(p.Seq),
			p.ModuleName,
			p.Part,
			units.FormatDimension(float64(p.LengthMM), unit),
			units.FormatDimension(float64(p.WidthMM), unit),
			formatFloat(p.ThicknessMM),
			p.Material,
			strconv.Itoa(p.Qty),
			edgeMarks(p),
		})
	}
	printTable([]string{"#", "MODULE", "PART", "LENGTH", "WIDTH", "THK_MM", "MATERIAL", "QTY", "EDGES"}, rows)
}

func printDoorSchedule(items []domain.DoorSpec, unit string) {
	rows := make([][]string, 0, len(items))
	for _, d := range items {
		rows = append(rows, []string{
			d.DoorNo,
			d.ModuleName,
			d.OpenType,
			units.FormatDimension(d.WidthMM, unit),
			units.FormatDimension(d.HeightMM, unit),
			units.FormatArea(float64(d.AreaSqmm), unit),
			d.Material,
			d.Finish,
		})
	}
	printTable([]string{"DOOR", "MODULE", "OPEN", "WIDTH", "HEIGHT", "AREA", "MATERIAL", "FINISH"}, rows)
}

func printHardwareSchedule(items []domain.HardwareItem) {
	rows := make([][]string, 0, len(items))
	var total float64
	for _, h := range items {
		total += h.EstimatedCost
		rows = append(rows, []string{
			h.ModuleName,
			h.Item,
			h.Category,
			formatFloat(h.Qty),
			h.Unit,
			formatFloat(h.Rate),
			formatMoney(h.EstimatedCost),
		})
	}
	printTable([]string{"MODULE", "ITEM", "CATEGORY", "QTY", "UNIT", "RATE", "COST"}, rows)
	if len(rows) > 0 {
		_, _ = fmt.Fprintf(stdout, "hardware total: %s\n", formatMoney(total))
	}
}

func printTakeoff(t domain.Takeoff) {
	rows := make([][]string, 0, len(t.Items))
	for _, g := range t.Items {
		if g.IsEdgeband {
			rows = append(rows, []string{
				g.Material,
				formatFloat(g.ThicknessMM),
				"-",
				fmt.Sprintf("%s rft", formatFloat(g.TotalRunningFt)),
				formatFloat(g.WastagePct) + "%",
				"-",
				formatFloat(g.RatePerRft) + "/rft",
				formatMoney(g.EstimatedCost),
			})
			continue
		}
		rows = append(rows, []string{
			g.Material,
			formatFloat(g.ThicknessMM),
			strconv.Itoa(g.PanelCount),
			fmt.Sprintf("%s sqft", formatFloat(g.TotalAreaSqft)),
			formatFloat(g.WastagePct) + "%",
			strconv.Itoa(g.SheetsNeeded),
			formatFloat(g.RatePerSqft) + "/sqft",
			formatMoney(g.EstimatedCost),
		})
	}
	printTable([]string{"MATERIAL", "THK_MM", "PANELS", "QUANTITY", "WASTAGE", "SHEETS", "RATE", "COST"}, rows)
	_, _ = fmt.Fprintf(stdout, "grand total: %s\n", formatMoney(t.GrandTotal))
}

func printRuns(items []domain.GenerationRun) {
	rows := make([][]string, 0, len(items))
	for _, r := range items {
		rows = append(rows, []string{
			r.RunID,
			strconv.Itoa(r.ModuleCount),
			strconv.Itoa(r.PanelCount),
			strconv.Itoa(r.DoorCount),
			strconv.Itoa(r.HardwareCount),
			formatMoney(r.GrandTotal),
			formatTime(r.CreatedAt),
		})
	}
	printTable([]string{"RUN_ID", "MODULES", "PANELS", "DOORS", "HARDWARE", "GRAND_TOTAL", "AT"}, rows)
}

const (
	sectionCutList  = "cut-list"
	sectionDoors    = "doors"
	sectionHardware = "hardware"
	sectionTakeoff  = "takeoff"
	sectionAll      = "all"
)

func printOutputs(out domain.Outputs, section, unit string) error {
	switch section {
	case sectionCutList:
		printCutList(out.CutList, unit)
	case sectionDoors:
		printDoorSchedule(out.DoorSchedule, unit)
	case sectionHardware:
		printHardwareSchedule(out.HardwareSchedule)
	case sectionTakeoff:
		printTakeoff(out.MaterialTakeoff)
	case sectionAll, "":
		for _, s := range []string{sectionDoors, sectionCutList, sectionHardware, sectionTakeoff} {
			_, _ = fmt.Fprintf(stdout, "== %s ==\n", s)
			if err := printOutputs(out, s, unit); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout)
		}
	default:
		return fmt.Errorf("unknown section %q (use cut-list, doors, hardware, takeoff or all)", section)
	}
	return nil
}
