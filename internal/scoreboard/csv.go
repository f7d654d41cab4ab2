package scoreboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	csvDateHeader = "Date"
	dateLayout    = time.DateOnly
)

// ExportFileName names the export file for the given day.
func ExportFileName(date time.Time) string {
	return "gym-scores-" + date.Format(dateLayout) + ".csv"
}

// EncodeCSV renders the board as a header line and one data row.
// Names are written verbatim; commas or quotes inside a name are not escaped.
func EncodeCSV(s State, date time.Time) string {
	header := strings.Join([]string{csvDateHeader, s.You.Name, s.Her.Name}, ",")
	row := strings.Join([]string{
		date.Format(dateLayout),
		strconv.Itoa(s.You.Score),
		strconv.Itoa(s.Her.Score),
	}, ",")
	return header + "\n" + row
}

// DecodeCSV applies an exported board on top of current. Input with fewer
// than two lines is rejected with ErrMalformedInput and current is returned
// as is. Short header or data lines leave the matching fields untouched, and
// a score that is not an integer becomes 0.
func DecodeCSV(text string, current State) (State, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return current, fmt.Errorf("csv: expected 2 lines, got %d: %w", len(lines), ErrMalformedInput)
	}
	next := current

	header := splitFields(lines[0])
	if len(header) >= 3 {
		next, _ = next.RenamePlayer(You, header[1])
		next, _ = next.RenamePlayer(Her, header[2])
	}

	row := splitFields(lines[1])
	if len(row) >= 3 {
		next.You.Score = parseScore(row[1])
		next.Her.Score = parseScore(row[2])
	}
	return next, nil
}

func splitFields(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\r"), ",")
}

func parseScore(field string) int {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0
	}
	return clamp(n)
}
