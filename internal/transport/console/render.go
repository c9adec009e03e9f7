package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/kiryu-dev/sea-battle/internal/domain"
)

// renderField draws the grid row by row: 2, 1 and 0 are intact, damaged and
// destroyed segments, x is a miss. Hidden fields show only segments that were
// hit.
func renderField(w io.Writer, field *domain.Field, ships *domain.ShipManager, reveal bool) {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < field.Width(); x++ {
		sb.WriteString(fmt.Sprintf("%2d", x))
	}
	sb.WriteByte('\n')
	for y := 0; y < field.Height(); y++ {
		sb.WriteString(fmt.Sprintf("%2d ", y))
		for x := 0; x < field.Width(); x++ {
			sb.WriteByte(' ')
			sb.WriteByte(cellSymbol(field, ships, domain.Coords{X: x, Y: y}, reveal))
		}
		sb.WriteByte('\n')
	}
	_, _ = io.WriteString(w, sb.String())
}

func cellSymbol(field *domain.Field, ships *domain.ShipManager, c domain.Coords, reveal bool) byte {
	cell, err := field.Cell(c)
	if err != nil {
		return '?'
	}
	if !cell.Occupied {
		if cell.Missed {
			return 'x'
		}
		return '.'
	}
	ship, err := ships.Ship(cell.Segment.Ship)
	if err != nil {
		return '?'
	}
	seg, err := ship.Segment(cell.Segment.Index)
	if err != nil {
		return '?'
	}
	if !reveal && cell.Status != domain.CellShip && seg.Status == domain.Intact {
		return '.'
	}
	switch seg.Status {
	case domain.Intact:
		return '2'
	case domain.Damaged:
		return '1'
	default:
		return '0'
	}
}

func renderAbilities(w io.Writer, queue []domain.AbilityKind) {
	if len(queue) == 0 {
		fmt.Fprintln(w, "No abilities available in the queue.")
		return
	}
	fmt.Fprintln(w, "Abilities in the queue:")
	for i, kind := range queue {
		fmt.Fprintf(w, "%d. %s\n", i+1, kind)
	}
}

func renderEffect(w io.Writer, effect domain.AbilityEffect) {
	switch effect.Kind {
	case domain.Scanner:
		if len(effect.Detected) == 0 {
			fmt.Fprintf(w, "Scanner found nothing around %s\n", effect.Target)
			return
		}
		for _, c := range effect.Detected {
			fmt.Fprintf(w, "Ship segment found at %s\n", c)
		}
	case domain.Bombardment:
		if effect.Outcome == nil {
			fmt.Fprintln(w, "Bombardment missed")
			return
		}
		fmt.Fprintf(w, "Bombardment hit a segment, it is now %s\n", effect.Outcome.Status)
	default:
		renderOutcome(w, "Double damage", *effect.Outcome)
	}
}

func renderOutcome(w io.Writer, who string, outcome domain.AttackOutcome) {
	if !outcome.Hit {
		fmt.Fprintf(w, "%s at %s: miss\n", who, outcome.Coords)
		return
	}
	fmt.Fprintf(w, "%s at %s: hit, segment %s\n", who, outcome.Coords, outcome.Status)
}
