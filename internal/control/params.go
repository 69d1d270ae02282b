// Package control holds the user-settable encoder parameters.
//
// Values are written from host notification threads and read by the audio
// thread once per block. Every field is an independent atomic, so readers
// never block and never observe a torn value.
package control

// ParamID identifies a parameter.
type ParamID int

const (
	CombinedW ParamID = iota
	DiffEqualization
	CoincEqualization
	ChannelOrder
	OutGain
	ZGain
	HorRotation

	// NumParams is the number of parameters.
	NumParams
)

// Kind is the value domain of a parameter.
type Kind int

const (
	KindBool Kind = iota
	KindChoice
	KindFloat
)

// Descriptor describes one parameter as exposed to a host.
type Descriptor struct {
	ID      ParamID
	Name    string // stable identifier
	Label   string
	Unit    string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

var descriptors = [NumParams]Descriptor{
	CombinedW:         {ID: CombinedW, Name: "combinedW", Label: "combined w channel", Kind: KindBool, Max: 1, Step: 1},
	DiffEqualization:  {ID: DiffEqualization, Name: "diffEqualization", Label: "differential z equalization", Kind: KindBool, Max: 1, Step: 1},
	CoincEqualization: {ID: CoincEqualization, Name: "coincEqualization", Label: "omni and eight diffuse-field equalization", Kind: KindBool, Max: 1, Step: 1},
	ChannelOrder:      {ID: ChannelOrder, Name: "channelOrder", Label: "channel order", Kind: KindChoice, Max: 1, Step: 1},
	OutGain:           {ID: OutGain, Name: "outGain", Label: "output gain", Unit: "dB", Kind: KindFloat, Min: -40, Max: 10, Step: 0.1},
	ZGain:             {ID: ZGain, Name: "zGain", Label: "z gain", Unit: "dB", Kind: KindFloat, Min: -20, Max: 10, Step: 0.1},
	HorRotation:       {ID: HorRotation, Name: "horRotation", Label: "horizontal rotation", Unit: "deg", Kind: KindFloat, Min: -180, Max: 180, Step: 1},
}

var byName = func() map[string]ParamID {
	m := make(map[string]ParamID, NumParams)
	for _, d := range descriptors {
		m[d.Name] = d.ID
	}
	return m
}()

// Descriptors returns the descriptor table in ParamID order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, NumParams)
	copy(out, descriptors[:])
	return out
}

// Describe returns the descriptor for id.
func (id ParamID) Describe() (Descriptor, bool) {
	if !id.Valid() {
		return Descriptor{}, false
	}
	return descriptors[id], true
}

// Valid reports whether id names a parameter.
func (id ParamID) Valid() bool {
	return id >= 0 && id < NumParams
}

func (id ParamID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return descriptors[id].Name
}

// Lookup resolves a parameter identifier such as "diffEqualization".
func Lookup(name string) (ParamID, bool) {
	id, ok := byName[name]
	return id, ok
}
