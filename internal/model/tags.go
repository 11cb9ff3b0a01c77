package model

// ResourceTag names a cached read view that a mutation invalidates. Mutating
// operations return the tags of every view they affect so the caller can
// refetch them; invalidation is an explicit return value, never an ambient
// side effect.
type ResourceTag string

const (
	TagTransactions ResourceTag = "transactions"
	TagDashboard    ResourceTag = "dashboard"
	TagRecurring    ResourceTag = "recurring"
	TagScenarios    ResourceTag = "scenarios"
	TagSimulation   ResourceTag = "simulation"
)
