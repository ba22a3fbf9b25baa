package catalog

import "sort"

// Definition describes one recognized document type. The catalog is static
// configuration: behavior differs only by the RequiresBothSides flag and the
// turnaround label, never by per-type logic.
type Definition struct {
	ID                string `json:"id"`
	RequiresBothSides bool   `json:"requiresBothSides"`
	EstimatedTime     string `json:"estimatedTime"`
}

var definitions = map[string]Definition{
	"drivers_license":          {ID: "drivers_license", RequiresBothSides: true, EstimatedTime: "2-3 weeks"},
	"birth_certificate":        {ID: "birth_certificate", RequiresBothSides: false, EstimatedTime: "4-6 weeks"},
	"social_security":          {ID: "social_security", RequiresBothSides: false, EstimatedTime: "2-4 weeks"},
	"passport":                 {ID: "passport", RequiresBothSides: false, EstimatedTime: "6-8 weeks"},
	"medical_records":          {ID: "medical_records", RequiresBothSides: false, EstimatedTime: "1-2 weeks"},
	"insurance_card":           {ID: "insurance_card", RequiresBothSides: true, EstimatedTime: "1-2 weeks"},
	"disability_determination": {ID: "disability_determination", RequiresBothSides: false, EstimatedTime: "4-6 weeks"},
	"medicaid_card":            {ID: "medicaid_card", RequiresBothSides: true, EstimatedTime: "2-3 weeks"},
	"veterans_id":              {ID: "veterans_id", RequiresBothSides: true, EstimatedTime: "3-4 weeks"},
	"housing_voucher":          {ID: "housing_voucher", RequiresBothSides: false, EstimatedTime: "2-4 weeks"},
	"snap_benefits":            {ID: "snap_benefits", RequiresBothSides: true, EstimatedTime: "1-2 weeks"},
	"employment_records":       {ID: "employment_records", RequiresBothSides: false, EstimatedTime: "1-2 weeks"},
}

// Get looks up a document type definition by ID.
func Get(id string) (Definition, bool) {
	def, ok := definitions[id]
	return def, ok
}

// All returns every definition sorted by ID.
func All() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
