package handlers

// formField describes one input of a form so clients can render it
type formField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

type formSpec struct {
	Name   string      `json:"name"`
	Action string      `json:"action"`
	Method string      `json:"method"`
	Fields []formField `json:"fields"`
}

func bound(v float64) *float64 {
	return &v
}

var addUserFields = []formField{
	{Name: "name", Label: "User Name", Type: "text", Required: true, Max: bound(100)},
}

var movieFields = []formField{
	{Name: "name", Label: "Movie Name", Type: "text", Required: true, Max: bound(100)},
	{Name: "director", Label: "Director", Type: "text", Max: bound(100)},
	{Name: "year", Label: "Year", Type: "integer", Min: bound(1000), Max: bound(9999)},
	{Name: "rating", Label: "Rating", Type: "number", Min: bound(0), Max: bound(10)},
	{Name: "imdb_id", Label: "IMDb ID", Type: "text"},
}
