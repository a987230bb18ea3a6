package planning

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
)

// parseDrawerHeights decodes a JSON array of per-drawer heights. Entries
// that are not numbers (or numeric strings) become 0, which callers treat
// as "use the default height". Anything other than an array yields nil.
func parseDrawerHeights(text domain.JSONText) []float64 {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		return nil
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	out := make([]float64, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case float64:
			out[i] = v
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				out[i] = f
			}
		}
	}
	return out
}

type customItem struct {
	name string
	qty  float64
}

// parseCustomHardware decodes an object of item name to quantity, keeping
// document order. Duplicate names keep their first position and last
// value. Non-object documents, malformed text, and entries whose value is
// not a non-negative number are dropped.
func parseCustomHardware(text domain.JSONText) []customItem {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	items := make([]customItem, 0)
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil
		}
		qty, ok := quantityOf(value)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		if i, seen := index[name]; seen {
			items[i].qty = qty
			continue
		}
		index[name] = len(items)
		items = append(items, customItem{name: name, qty: qty})
	}
	if _, err := dec.Token(); err != nil {
		return nil
	}
	return items
}

func quantityOf(value any) (float64, bool) {
	n, ok := value.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
