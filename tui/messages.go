package tui

// searchTickMsg fires when the debounce quiet period elapses. The
// generation identifies which input change armed it; stale generations
// are dropped.
type searchTickMsg struct {
	gen int
}

// clipboardCopiedMsg reports the outcome of a copy action.
type clipboardCopiedMsg struct {
	err error
}
