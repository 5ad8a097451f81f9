// Package grammar holds the shared, read-only PCFG data model: terminal
// groups, their descending-probability chains, and the structural
// templates built on top of them.
package grammar

// Category is one of the three terminal alphabets a PCFG template segment
// can draw from.
type Category byte

const (
	Letter  Category = 'L'
	Digit   Category = 'D'
	Special Category = 'S'
)

func (c Category) String() string {
	return string(rune(c))
}

// ValidCategory reports whether b is one of L, D, S.
func ValidCategory(b byte) bool {
	switch Category(b) {
	case Letter, Digit, Special:
		return true
	default:
		return false
	}
}

// NoNext is the sentinel index meaning "this group has no lower-probability
// successor in its chain".
const NoNext = -1

// Group is a TerminalGroup: a set of strings that all share exactly one
// probability within one (category, length) chain. Groups are built once
// at load time and never mutated afterwards; any number of PartialDerivations
// may alias the same group by index.
type Group struct {
	Probability float64
	Strings     []string
	// Next is the arena index of the next, strictly-lower-probability group
	// in this chain, or NoNext if this is the chain's tail.
	Next int
}

// Arena is a dense, append-only store of Groups addressed by integer index.
// It exists so that partial derivations can carry small int slices instead
// of pointers into a hand-linked list.
type Arena struct {
	groups []Group
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add appends g to the arena and returns its index.
func (a *Arena) Add(g Group) int {
	a.groups = append(a.groups, g)
	return len(a.groups) - 1
}

// Get returns a pointer to the group at index i. Callers must not mutate it;
// groups are shared read-only state after construction.
func (a *Arena) Get(i int) *Group {
	return &a.groups[i]
}

// Len returns the number of groups stored in the arena.
func (a *Arena) Len() int {
	return len(a.groups)
}

// Segment is one (category, length) element of a Template, e.g. the "LLL"
// in "LLLDD" is a Segment{Category: Letter, Length: 3}.
type Segment struct {
	Category Category
	Length   int
}

// Template is an immutable structural skeleton such as "LLLDD" together with
// its base probability from the trainer's structures.txt. A Template's
// segments are resolved to arena-indexed chain heads at load time; any
// segment that fails to resolve causes the whole template to be dropped
// before it ever reaches the queue.
type Template struct {
	Segments        []Segment
	BaseProbability float64
}

// ResolvedTemplate pairs a Template with the arena index of each segment's
// chain head and the template's initial joint probability
// (BaseProbability * product of head probabilities).
type ResolvedTemplate struct {
	Template         Template
	Heads            []int
	JointProbability float64
}
