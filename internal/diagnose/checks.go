package diagnose

// Checks enables or disables the individual diagnostic rules for one
// run. The zero value disables everything; callers normally start from
// DefaultChecks. A Checks value is passed by value into Diagnose and is
// never mutated by the engine.
type Checks struct {
	EmptyColumns   bool `yaml:"empty_columns" json:"empty_columns"`
	EmptyRows      bool `yaml:"empty_rows" json:"empty_rows"`
	MissingHeaders bool `yaml:"missing_headers" json:"missing_headers"`
	MixedTypes     bool `yaml:"mixed_types" json:"mixed_types"`
}

// DefaultChecks returns the all-enabled configuration.
func DefaultChecks() Checks {
	return Checks{
		EmptyColumns:   true,
		EmptyRows:      true,
		MissingHeaders: true,
		MixedTypes:     true,
	}
}
