// Package wizard implements the proof submission flow as a four stage state
// machine: Connect, Upload, Review and Confirm. A Controller owns a single
// Session, refuses transitions whose guard does not hold, and projects the
// session into a View for whatever is rendering it.
//
// The controller is not safe for concurrent use. Callers deliver one input
// event at a time, which is what the bubbletea runtime does.
package wizard
