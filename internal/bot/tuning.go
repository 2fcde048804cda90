package bot

// Tuning holds the thresholds a strategy plays by.
type Tuning struct {
	// CallThreshold is the highest known grid sum at which the bot calls
	// Pablo.
	CallThreshold int
	// DiscardTakeMax is the highest discard-top value worth taking over a
	// blind deck draw.
	DiscardTakeMax int
	// GambleValue and below are placed into an unknown slot rather than
	// thrown away.
	GambleValue int
	// CallWithUnknowns allows calling Pablo with this many grid cards still
	// unknown, pricing each unknown at UnknownEstimate.
	CallWithUnknowns int
	UnknownEstimate  int
}

// DefaultTuning plays conservatively: certain knowledge only.
var DefaultTuning = Tuning{
	CallThreshold:    5,
	DiscardTakeMax:   3,
	GambleValue:      1,
	CallWithUnknowns: 0,
	UnknownEstimate:  7,
}

// SmartTuning takes more discards and calls earlier on expectation.
var SmartTuning = Tuning{
	CallThreshold:    8,
	DiscardTakeMax:   4,
	GambleValue:      2,
	CallWithUnknowns: 1,
	UnknownEstimate:  7,
}
