// Package voice orchestrates one synthesizer voice.
//
// Each block, Voice picks an engine from a registry through a hysteresis
// quantizer, modulates the engine parameters, renders, runs the optional
// two-stage modulation insert on the wet signal, and post-processes four
// channels (main and auxiliary, wet and dry) into 16-bit frames.
//
// When the selected engine changes, the outgoing and incoming engines both
// render for one block and are crossfaded linearly, so switches do not
// click. Triggers pass through a short delay line so the incoming engine
// sees them at the same position relative to that crossfade.
//
// Render never allocates, blocks or locks. RequestReload is the only method
// that may be called from another goroutine.
package voice
