package plans

import "slices"

// Comparison contains the differences between two plans.
type Comparison struct {
	// Capabilities gained in the target plan
	NewCapabilities []Capability
	// Capabilities lost from the current plan
	LostCapabilities []Capability
	// Resources with increased limits (old limit -> new limit)
	IncreasedLimits map[Resource]LimitChange
	// Resources with decreased limits (old limit -> new limit)
	DecreasedLimits map[Resource]LimitChange
	// Resources that exist only in the target plan
	NewResources map[Resource]int64
	// Resources that exist only in the current plan
	RemovedResources map[Resource]int64
}

// LimitChange represents a change in resource limit.
type LimitChange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// HasDecreases returns true if any resources have decreased limits.
// A downgrade with decreases is what makes policy freezing reachable.
func (c *Comparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedResources) > 0
}

// Compare returns the differences between current and target plans.
func Compare(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	comparison := &Comparison{
		NewCapabilities:  make([]Capability, 0),
		LostCapabilities: make([]Capability, 0),
		IncreasedLimits:  make(map[Resource]LimitChange),
		DecreasedLimits:  make(map[Resource]LimitChange),
		NewResources:     make(map[Resource]int64),
		RemovedResources: make(map[Resource]int64),
	}

	for _, capability := range target.Capabilities {
		if !slices.Contains(current.Capabilities, capability) {
			comparison.NewCapabilities = append(comparison.NewCapabilities, capability)
		}
	}
	for _, capability := range current.Capabilities {
		if !slices.Contains(target.Capabilities, capability) {
			comparison.LostCapabilities = append(comparison.LostCapabilities, capability)
		}
	}

	for resource, targetLimit := range target.Limits {
		currentLimit, exists := current.Limits[resource]
		if !exists {
			comparison.NewResources[resource] = targetLimit
			continue
		}

		if targetLimit == currentLimit {
			continue
		}

		change := LimitChange{From: currentLimit, To: targetLimit}
		switch {
		case currentLimit == Unlimited:
			// Going from unlimited to limited is a decrease
			comparison.DecreasedLimits[resource] = change
		case targetLimit == Unlimited:
			// Going from limited to unlimited is an increase
			comparison.IncreasedLimits[resource] = change
		case targetLimit > currentLimit:
			comparison.IncreasedLimits[resource] = change
		default:
			comparison.DecreasedLimits[resource] = change
		}
	}

	for resource, currentLimit := range current.Limits {
		if _, exists := target.Limits[resource]; !exists {
			comparison.RemovedResources[resource] = currentLimit
		}
	}

	return comparison
}
