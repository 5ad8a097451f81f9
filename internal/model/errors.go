package model

import "errors"

// Sentinel errors for the fatal model-load failures. Malformed lines and
// zero-probability templates never escape the loader as returned errors;
// they are skipped and counted in the loader's Stats.
var (
	// ErrNoStructures is returned when structures.txt is missing or
	// unreadable.
	ErrNoStructures = errors.New("model: grammar/structures.txt could not be opened")
	// ErrNoTemplates is returned when structures.txt parsed successfully
	// but zero templates survived segment resolution and zero-probability
	// rejection.
	ErrNoTemplates = errors.New("model: zero usable templates after loading structures.txt")
	// ErrNoProbabilityTables is returned when neither digits/ nor
	// special/ contributed a single loadable file.
	ErrNoProbabilityTables = errors.New("model: no digit or special probability tables could be loaded")
	// ErrNoDictionary is returned when dictionary.txt is missing or
	// unreadable.
	ErrNoDictionary = errors.New("model: dictionary.txt could not be opened")
)
