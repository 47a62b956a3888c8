package views

import "cerealdash/internal/models"

type TableRow struct {
	Name          string  `json:"name"`
	Manufacturer  string  `json:"manufacturer"`
	Type          string  `json:"type"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Sodium        float64 `json:"sodium"`
	Fiber         float64 `json:"fiber"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Shelf         int     `json:"shelf"`
}

// TableView keeps the rows of the detail table.
type TableView struct {
	rows []TableRow
}

func NewTableView() *TableView {
	return &TableView{rows: []TableRow{}}
}

func (t *TableView) RenderTable(records []models.Record) {
	rows := make([]TableRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, TableRow{
			Name:          r.Name,
			Manufacturer:  r.Manufacturer,
			Type:          r.Type,
			Calories:      r.Calories,
			Protein:       r.Protein,
			Fat:           r.Fat,
			Sodium:        r.Sodium,
			Fiber:         r.Fiber,
			Carbohydrates: r.Carbohydrates,
			Sugars:        r.Sugars,
			Shelf:         r.Shelf,
		})
	}
	t.rows = rows
}

func (t *TableView) Rows() []TableRow {
	out := make([]TableRow, len(t.rows))
	copy(out, t.rows)
	return out
}
