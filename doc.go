// Package aafoa encodes the four capsule signals of a tetrahedral
// (A-format) microphone into first-order Ambisonics (B-format).
//
// A [Processor] is the streaming, real-time safe core. The host prepares
// it once for a sample rate and maximum block size and then calls
// [Processor.ProcessBlock] for every block of planar audio:
//
//	p, err := aafoa.New[float32](&aafoa.Config{LatencyReporter: host})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Prepare(48000, 512); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Audio thread: in holds Front, Back, Left, Right.
//	if err := p.ProcessBlock(in, out); err != nil {
//	    // layout or block size mismatch
//	}
//
// Parameters may be changed from any goroutine at any time with
// [Processor.SetParameter] or [Processor.SetParameterByName]. They are
// stored atomically and picked up at the next block.
//
// # Signal Flow
//
// Each block is matrixed into W, X, Y and Z, equalized, weighted to SN3D
// and written in ACN (W, Y, Z, X) or FuMa (W, X, Y, Z) channel order:
//
//   - Z can run through a low shelf and a linear-phase FIR that correct
//     the differential capsule pair. Enabling it adds a latency of about
//     5.8 ms, which is reported through [LatencyReporter].
//   - W, X and Y always carry the same delay as the Z equalizer, either
//     through diffuse-field FIRs or through plain delay lines.
//
// # Offline Use
//
// For whole recordings held in memory, [Encode] runs a processor over the
// input and can trim the reported latency:
//
//	bformat, err := aafoa.Encode(aformat, 48000, aafoa.Settings{
//	    DiffEqualization:  true,
//	    CoincEqualization: true,
//	    Order:             aafoa.FuMa,
//	    CompensateLatency: true,
//	}, 0)
package aafoa
