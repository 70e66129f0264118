// Package engines contains the built-in synthesis engines and registers them
// in their canonical order.
//
// Every engine reads the same four macro controls from engine.Parameters:
// Note, Harmonics, Timbre and Morph. Their meaning is engine specific and
// documented on each type. Engines allocate their working memory from the
// buffer.Arena passed to Init and never allocate while rendering.
package engines
