package models

// Partner is one entry in the channel-partner catalog.
type Partner struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Region      string `json:"region,omitempty" yaml:"region,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
}
