package records

// Fixture is a named set of field values.
type Fixture struct {
	SLA        *float64
	Calls      []float64
	Fails      []float64
	Resolution []float64
}

func sla(v float64) *float64 { return &v }

// Predefined fixtures.
var (
	// FixtureQuietWeek has low volume and fast resolution; healthy.
	FixtureQuietWeek = Fixture{
		Calls:      []float64{40, 42, 38, 45, 41, 12, 9},
		Fails:      []float64{1, 0, 1, 2, 1, 0, 0},
		Resolution: []float64{20, 22, 19, 24, 21, 18, 17},
		SLA:        sla(45),
	}

	// FixtureBusyWeek has high volume and a failure spike at the weekend.
	FixtureBusyWeek = Fixture{
		Calls: []float64{520, 610, 580, 700, 655, 300, 240},
		Fails: []float64{30, 44, 38, 61, 52, 40, 55},
	}

	// FixtureSLABreach resolves slower than its target every weekday.
	FixtureSLABreach = Fixture{
		Resolution: []float64{52, 49, 58, 61, 50, 30, 28},
		SLA:        sla(45),
	}
)
