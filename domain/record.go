package domain

// Well-known record field names. Completeness weights and extraction are
// keyed by these names.
const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldLocation       = "location"
	FieldEmploymentType = "employment_type"
	FieldSalary         = "salary"
	FieldSkills         = "skills"
)

// Record is the job-post draft being filled in by the conversation.
// Known fields are typed; anything else the conversation produces lands in
// Extra so it survives persistence without a schema change.
type Record struct {
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	Location       string         `json:"location,omitempty"`
	EmploymentType string         `json:"employment_type,omitempty"`
	Salary         string         `json:"salary,omitempty"`
	Skills         []string       `json:"skills,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// Scalar returns the value of a known scalar field by name. The second
// return is false for unknown names and for the list-valued skills field.
func (r *Record) Scalar(field string) (string, bool) {
	switch field {
	case FieldTitle:
		return r.Title, true
	case FieldDescription:
		return r.Description, true
	case FieldLocation:
		return r.Location, true
	case FieldEmploymentType:
		return r.EmploymentType, true
	case FieldSalary:
		return r.Salary, true
	}
	return "", false
}

// SetScalar sets a known scalar field by name. Unknown names go to Extra.
func (r *Record) SetScalar(field, value string) {
	switch field {
	case FieldTitle:
		r.Title = value
	case FieldDescription:
		r.Description = value
	case FieldLocation:
		r.Location = value
	case FieldEmploymentType:
		r.EmploymentType = value
	case FieldSalary:
		r.Salary = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[field] = value
	}
}

// Populated reports whether the named field carries a value.
func (r *Record) Populated(field string) bool {
	if field == FieldSkills {
		return len(r.Skills) > 0
	}
	if v, ok := r.Scalar(field); ok {
		return v != ""
	}
	if r.Extra != nil {
		if v, ok := r.Extra[field]; ok {
			s, isStr := v.(string)
			return !isStr || s != ""
		}
	}
	return false
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	out := *r
	if r.Skills != nil {
		out.Skills = append([]string(nil), r.Skills...)
	}
	if r.Extra != nil {
		out.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
