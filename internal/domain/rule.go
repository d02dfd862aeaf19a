package domain

import "time"

type Action string

const (
	ActionCopy     Action = "copy"
	ActionSkip     Action = "skip"
	ActionLocalize Action = "localize"
)

type RuleValue string

const RuleValueReference RuleValue = "reference"

type Serialization string

const SerializationNone Serialization = "none"

// ReferenceType is the kind of object a localized field points to.
type ReferenceType string

const (
	ReferenceTypeMedia    ReferenceType = "media"
	ReferenceTypePost     ReferenceType = "post"
	ReferenceTypeTaxonomy ReferenceType = "taxonomy"
	ReferenceTypeNone     ReferenceType = "none"
)

// Rule is a single field filter consumed by the translation connector.
type Rule struct {
	Pattern       string        `json:"pattern" yaml:"pattern"`
	Action        Action        `json:"action" yaml:"action"`
	Value         RuleValue     `json:"value,omitempty" yaml:"value,omitempty"`
	Serialization Serialization `json:"serialization,omitempty" yaml:"serialization,omitempty"`
	Type          ReferenceType `json:"type,omitempty" yaml:"type,omitempty"`
}

// RuleSet is one generation run's output as handed to publishers.
type RuleSet struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Rules       []Rule    `json:"rules" yaml:"rules"`
}
