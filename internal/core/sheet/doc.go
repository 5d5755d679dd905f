// Package sheet implements the renderer-independent core of an action
// sheet: the action list, the panel layout engine, the presentation state
// machine, the backdrop capture/blur sequencing and the interaction router.
//
// Rendering, animation, text measurement and screen capture are supplied by
// the caller through small interfaces (TextMeasurer, Animator, Host,
// Capturer, BlurRenderer, Splicer). Completions of asynchronous work are
// reported back into the Machine from the same goroutine that drives it.
package sheet
