package yamlbrackets

type YAMLTable struct {
	Brackets []YAMLBracket `yaml:"brackets"`
}

// YAMLBracket leaves Upper unset for the unbounded top bracket.
type YAMLBracket struct {
	Rate  *float64 `yaml:"rate"`
	Lower *float64 `yaml:"lower"`
	Upper *float64 `yaml:"upper,omitempty"`
}
