package band

// Row classifier thresholds. Fractions are of the frame width unless noted.
const (
	// NearBlackValue marks a pixel pair as near-black when both values are below it
	NearBlackValue = 20
	// ZeroValue counts a near-black pixel as a zero
	ZeroValue = 15
	// BrightValue is the minimum value for a ratio to be collected
	BrightValue = 50
	// RatioThreshold is the |k| above which a pixel darkened or lightened
	RatioThreshold = 0.1
	// UniformityLimit is the largest ratio spread accepted as a uniform edge
	UniformityLimit = 0.1

	// UpperRegion is the fraction of height above which upper edges may sit
	UpperRegion = 0.8
	// LowerRegion is the fraction of height below which lower edges may sit
	LowerRegion = 0.9

	EdgeCountFraction    = 0.2
	EdgeRunFraction      = 0.1
	UpperDensityFraction = 0.4
	LowerDensityFraction = 0.5
	StrongZerosFraction  = 0.2
	StrongCountFraction  = 0.5
	SaturatedFraction    = 0.9
)

// Transition detector thresholds
const (
	SameHueLimit        = 50
	CloseHueLimit       = 10
	ExactHueLimit       = 5
	SaturatedChroma     = 100
	ChromaDelta         = 50
	DarkPairCurrent     = 20
	DarkPairPrevious    = 25
	BlackPairValue      = 5
	DimCurrentValue     = 15
	DimPreviousValue    = 25
	WhitePairValue      = 150
	ValueDropLimit      = 100
	DarkenRatio         = 0.20
	SameColorDistance   = 50
	SameColorRatioLimit = 0.5

	RowDarkenedFraction   = 0.55
	RowPartialFraction    = 0.2
	RowContinueZeros      = 0.3
	RowSameFraction       = 0.7
	RowHueShiftFraction   = 0.3
	ErrorRowsFraction     = 0.3
	SpanMinHeightFraction = 0.2
	SpanBottomFraction    = 0.85
	SpanDensityFraction   = 0.6
)

// Aggregator thresholds
const (
	// UpperDominance is the fraction of frames the upper mode must exceed
	UpperDominance = 0.3
	// LowerDominance is the fraction of frames the lower mode must exceed
	LowerDominance = 0.2
	// EventSnapRows is the tolerance for snapping transition spans to the modes
	EventSnapRows = 40
	// CandidateSnapRows is the tolerance for snapping candidate rows to the modes
	CandidateSnapRows = 5
	// HysteresisFrames is the run length needed to infer appear or disappear
	HysteresisFrames = 30
)
