package sim

// DefaultBatteryFlow returns the built-in battery production flow: eleven
// stages from raw-material intake to shipment, pivoting at "Production Batch
// Start" where the intake sub-path hands over to core production.
//
// The checkpoint overrides route core-production failures back to the
// upstream checkpoint whose output the failed stage consumed, rather than to
// the stage's own declared rework link.
func DefaultBatteryFlow() *Flow {
	stages := []Stage{
		{Name: "Raw Material Arrival", DurationMin: 5, DurationMax: 30, Chance: 1.0},
		{Name: "Quality Check (Raw Material)", DurationMin: 15, DurationMax: 60, Chance: 1.0, ReworkTo: "Raw Material Arrival"},
		{Name: "Storage (Raw Material)", DurationMin: 30, DurationMax: 120, Chance: 0.95}, // 5% go directly to allocation
		{Name: "Material Allocation", DurationMin: 10, DurationMax: 45, Chance: 1.0, ReworkTo: "Quality Check (Raw Material)"},
		{Name: "Production Batch Start", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "In-Process Quality Check", DurationMin: 20, DurationMax: 90, Chance: 1.0, ReworkTo: "Production Batch Start"},
		{Name: "Assembly/Packaging", DurationMin: 60, DurationMax: 300, Chance: 1.0, ReworkTo: "In-Process Quality Check"},
		{Name: "Final Quality Check", DurationMin: 15, DurationMax: 75, Chance: 1.0, ReworkTo: "Assembly/Packaging"},
		{Name: "Storage (Finished Goods)", DurationMin: 45, DurationMax: 180, Chance: 0.98}, // 2% go directly to fulfillment
		{Name: "Order Fulfillment", DurationMin: 20, DurationMax: 150, Chance: 1.0, ReworkTo: "Storage (Finished Goods)"},
		{Name: "Shipment", DurationMin: 5, DurationMax: 60, Chance: 1.0},
	}
	overrides := map[string]string{
		"In-Process Quality Check": "Production Batch Start",
		"Assembly/Packaging":       "In-Process Quality Check",
		"Final Quality Check":      "Assembly/Packaging",
		"Order Fulfillment":        "Storage (Finished Goods)",
	}
	flow, err := NewFlow(stages, "Production Batch Start", overrides)
	if err != nil {
		// The built-in flow is validated by tests; a construction failure
		// here is a programming error.
		panic(err)
	}
	return flow
}

// DefaultResources is the resource pool of the battery production line.
func DefaultResources() []string {
	return []string{"Worker A", "Worker B", "Machine X", "Machine Y", "Warehouse Staff 1"}
}

// Default run-level parameters of the battery production scenario.
const (
	DefaultBatchSizeMin      = 500
	DefaultBatchSizeMax      = 5000
	DefaultReworkProbability = 0.15
)
