package aafoa

// Identity
const (
	// Name is the processor name reported to hosts.
	Name = "AAFoaCreator"
)

// Channel layout
const (
	NumInputChannels  = 4 // Front, Back, Left, Right
	NumOutputChannels = 4 // first-order B-format
)

// Block sizes
const (
	// DefaultBlockSize is used by Encode when no block size is given.
	DefaultBlockSize = 512

	// MaxBlockSize bounds the block size accepted by Prepare.
	MaxBlockSize = 1 << 16
)

// Lifecycle states
const (
	stateUnprepared int32 = iota
	stateReady
	stateProcessing
	statePreparing
)
