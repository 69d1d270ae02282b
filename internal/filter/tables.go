package filter

// Breakpoint is one point of a target magnitude response.
type Breakpoint struct {
	Hz float64
	DB float64
}

// zDiffTable equalizes the differential Z signal after the low-shelf stage.
// The shelf already restores the 6 dB/octave low-frequency loss of the
// capsule difference, so this table shapes the region where the pair
// spacing starts to comb-filter.
var zDiffTable = []Breakpoint{
	{20, 0},
	{1000, 0},
	{2500, 0.8},
	{4000, 2.0},
	{6000, 3.2},
	{8000, 4.0},
	{10000, 2.5},
	{12000, -2.0},
	{14000, -5.5},
	{16000, -8.0},
	{20000, -12.0},
}

// coincEightTable is the diffuse-field correction for the X and Y
// figure-eight patterns formed by subtracting an omni pair.
var coincEightTable = []Breakpoint{
	{20, 0},
	{2000, 0},
	{3500, 0.6},
	{5000, 1.5},
	{7000, 2.4},
	{9000, 3.0},
	{11000, 2.2},
	{14000, 1.0},
	{17000, -1.0},
	{20000, -3.0},
}

// coincOmniTable is the diffuse-field correction for the W pattern formed
// by summing an omni pair.
var coincOmniTable = []Breakpoint{
	{20, 0},
	{3000, 0},
	{5000, -0.4},
	{7000, -1.0},
	{9000, -1.8},
	{11000, -2.5},
	{13500, -3.2},
	{16000, -4.0},
	{20000, -6.0},
}
