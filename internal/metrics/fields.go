package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrProvider = "provider"
	AttrAction   = "action"
	AttrOutcome  = "outcome"
	AttrFrom     = "from"
	AttrTo       = "to"
)
