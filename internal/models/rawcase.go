package models

// RawCase is a single test-case record as written by the capture pipeline.
// Every field is free-form text; an absent field is the empty string.
type RawCase struct {
	ID              string `json:"id" yaml:"id" mapstructure:"id"`
	Name            string `json:"name" yaml:"name" mapstructure:"name"`
	Category        string `json:"category" yaml:"category" mapstructure:"category"`
	InputLengthType string `json:"inputLengthType" yaml:"inputLengthType" mapstructure:"inputLengthType"`
	Input           string `json:"input" yaml:"input" mapstructure:"input"`
	Expected        string `json:"expected" yaml:"expected" mapstructure:"expected"`
	Actual          string `json:"actual" yaml:"actual" mapstructure:"actual"`
	Status          string `json:"status" yaml:"status" mapstructure:"status"`
}
