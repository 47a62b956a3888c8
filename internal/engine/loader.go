package engine

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	"unsafe"

	"cerealdash/internal/models"
)

var ErrMissingColumn = errors.New("missing column")

// --- 1. FAST ZERO-ALLOC PARSERS ---

func unsafeToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// fastInt parses "-12" -> -12. ok is false for anything that is not a plain integer.
func fastInt(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	neg := false
	if b[0] == '-' || b[0] == '+' {
		neg = b[0] == '-'
		b = b[1:]
		if len(b) == 0 {
			return 0, false
		}
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

// Exact powers of ten; a mantissa below 2^53 divided by one of these is
// correctly rounded.
var pow10 = [...]float64{1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
	1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22}

const maxExactMantissa = 1 << 53

// fastFloat parses "123.45" -> 123.45. Signs are accepted, exponents are not.
// Digits accumulate into one integer mantissa; values too long for the fast
// path go through strconv.
func fastFloat(b []byte) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	s := b
	neg := false
	if b[0] == '-' || b[0] == '+' {
		neg = b[0] == '-'
		b = b[1:]
	}
	var mantissa uint64
	digits, frac := 0, 0
	dot := false
	for _, c := range b {
		if c == '.' {
			if dot {
				return 0, false
			}
			dot = true
			continue
		}
		if c < '0' || c > '9' {
			return 0, false
		}
		if mantissa < maxExactMantissa {
			mantissa = mantissa*10 + uint64(c-'0')
		} else {
			mantissa = maxExactMantissa
		}
		digits++
		if dot {
			frac++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if mantissa >= maxExactMantissa || frac >= len(pow10) {
		f, err := strconv.ParseFloat(unsafeToString(s), 64)
		return f, err == nil
	}
	num := float64(mantissa) / pow10[frac]
	if neg {
		num = -num
	}
	return num, true
}

var sep = []byte{','}

// splitFields cuts one CSV line into fields. Double-quoted fields may contain
// commas and "" escapes.
func splitFields(line []byte, dst [][]byte) [][]byte {
	dst = dst[:0]
	rest := line
	for {
		if len(rest) > 0 && rest[0] == '"' {
			field, tail, more := cutQuoted(rest[1:])
			dst = append(dst, field)
			if !more {
				return dst
			}
			rest = tail
			continue
		}
		field, tail, found := bytes.Cut(rest, sep)
		dst = append(dst, bytes.TrimSpace(field))
		if !found {
			return dst
		}
		rest = tail
	}
}

func cutQuoted(b []byte) (field, tail []byte, more bool) {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '"' {
			out = append(out, c)
			continue
		}
		if i+1 < len(b) && b[i+1] == '"' {
			out = append(out, '"')
			i++
			continue
		}
		if _, tail, found := bytes.Cut(b[i+1:], sep); found {
			return out, tail, true
		}
		return out, nil, false
	}
	return out, nil, false
}

// --- 2. MAIN LOADER ---

const (
	colName = iota
	colManufacturer
	colType
	colCalories
	colProtein
	colFat
	colSodium
	colFiber
	colCarbohydrates
	colSugars
	colShelf
	colPotassium
	colVitamins
	colWeight
	colCups
	numColumns
)

var columnNames = [numColumns]string{
	"Cereal", "Manufacturer", "Type", "Calories", "Protein", "Fat", "Sodium",
	"Fiber", "Carbohydrates", "Sugars", "Shelf", "Potassium", "Vitamins", "Weight", "Cups",
}

var requiredColumns = []int{colName, colManufacturer, colCalories, colFiber, colSugars, colShelf}

// LoadCereals reads the cereal CSV at path.
func LoadCereals(path string) ([]models.Record, error) {
	start := time.Now()
	log.Printf("Loading cereals from %s...", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	records, err := ParseCereals(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	log.Printf("Load Complete. Rows: %d. Time: %v", len(records), time.Since(start))
	return records, nil
}

// ParseCereals parses CSV content with a header row. Rows without a numeric
// calories, fiber or sugars value are dropped, as are repeated names.
func ParseCereals(content []byte) ([]models.Record, error) {
	// A. Header -> column positions
	header, body, _ := bytes.Cut(content, []byte{'\n'})
	header = bytes.TrimSuffix(bytes.TrimPrefix(header, []byte("\xef\xbb\xbf")), []byte{'\r'})

	var pos [numColumns]int
	for i := range pos {
		pos[i] = -1
	}
	for i, h := range splitFields(header, nil) {
		for c, name := range columnNames {
			if string(h) == name {
				pos[c] = i
			}
		}
	}
	for _, c := range requiredColumns {
		if pos[c] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, columnNames[c])
		}
	}

	// B. Rows
	records := make([]models.Record, 0, bytes.Count(body, []byte{'\n'})+1)
	seen := make(map[string]struct{})
	fields := make([][]byte, 0, numColumns)
	skipped := 0

	for len(body) > 0 {
		var line []byte
		line, body, _ = bytes.Cut(body, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		fields = splitFields(line, fields)
		get := func(c int) []byte {
			if pos[c] < 0 || pos[c] >= len(fields) {
				return nil
			}
			return fields[pos[c]]
		}
		num := func(c int) float64 {
			v, _ := fastFloat(get(c))
			return v
		}

		name := get(colName)
		calories, okC := fastFloat(get(colCalories))
		fiber, okF := fastFloat(get(colFiber))
		sugars, okS := fastFloat(get(colSugars))
		if len(name) == 0 || !okC || !okF || !okS {
			skipped++
			continue
		}
		if _, dup := seen[unsafeToString(name)]; dup {
			log.Printf("Skipping duplicate cereal %q", name)
			skipped++
			continue
		}
		shelf, _ := fastInt(get(colShelf))

		rec := models.Record{
			Name:          string(name),
			Manufacturer:  string(get(colManufacturer)),
			Type:          string(get(colType)),
			Calories:      calories,
			Protein:       num(colProtein),
			Fat:           num(colFat),
			Sodium:        num(colSodium),
			Fiber:         fiber,
			Carbohydrates: num(colCarbohydrates),
			Sugars:        sugars,
			Shelf:         shelf,
			Potassium:     num(colPotassium),
			Vitamins:      num(colVitamins),
			Weight:        num(colWeight),
			Cups:          num(colCups),
		}
		seen[rec.Name] = struct{}{}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Printf("Skipped %d malformed or duplicate rows", skipped)
	}
	return records, nil
}
