package views

import "cerealdash/internal/models"

// Join is the keyed difference between two renders of a view. Clients
// animate Update keys in place, add Enter keys and remove Exit keys.
type Join struct {
	Enter  []string `json:"enter"`
	Update []string `json:"update"`
	Exit   []string `json:"exit"`
}

func joinKeys(prev, next []string) Join {
	j := Join{Enter: []string{}, Update: []string{}, Exit: []string{}}
	before := models.NewKeySet(prev...)
	after := models.NewKeySet(next...)
	for _, k := range next {
		if before.Has(k) {
			j.Update = append(j.Update, k)
		} else {
			j.Enter = append(j.Enter, k)
		}
	}
	for _, k := range prev {
		if !after.Has(k) {
			j.Exit = append(j.Exit, k)
		}
	}
	return j
}

func names(records []models.Record) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].Name
	}
	return out
}
