package chord

// Pattern is one entry in the chord decision list: an ascending set of
// distinct semitone intervals above the root, the name suffix it maps
// to, a disclaimer for omitted tones, and scale-degree relabels for the
// spelling (a ninth chord spells interval 2 as "9").
type Pattern struct {
	Intervals  []int
	Name       string
	Disclaimer string
	Degrees    map[int]string
}

// matches reports whether the pattern's interval list equals the given
// ascending sequence exactly. An empty interval list is a wildcard.
func (p Pattern) matches(ivs []int) bool {
	if len(p.Intervals) == 0 {
		return true
	}
	if len(p.Intervals) != len(ivs) {
		return false
	}
	for i, v := range p.Intervals {
		if ivs[i] != v {
			return false
		}
	}
	return true
}

// degreeNames spells intervals 0..11 as scale degrees.
var degreeNames = [12]string{
	"rt", "b2", "2", "b3", "3", "4", "b5", "5", "b6", "6", "7", "maj7",
}

// builtinPatterns is the chord decision list, keyed by note count.
// Entry order is load-bearing: the first exact match wins, which is how
// ambiguous shapes (an 11 versus a sus4 voicing) get their names. Do
// not sort.
//
// The power-chord disclaimer "no3" has no leading comma while every
// other disclaimer reads ",noN"; that inconsistency is long-standing
// observed behavior and is kept as is.
var builtinPatterns = map[int][]Pattern{
	1: {
		{Intervals: nil, Name: "", Disclaimer: ""},
	},
	2: {
		{Intervals: []int{7}, Name: "5", Disclaimer: "no3"},
		{Intervals: []int{4}, Name: "", Disclaimer: ",no5"},
		{Intervals: []int{3}, Name: "m", Disclaimer: ",no5"},
		{Intervals: []int{5}, Name: "sus4", Disclaimer: ",no5"},
		{Intervals: []int{2}, Name: "sus2", Disclaimer: ",no5"},
		{Intervals: []int{10}, Name: "7", Disclaimer: ",no3,no5"},
		{Intervals: []int{11}, Name: "maj7", Disclaimer: ",no3,no5"},
		{Intervals: []int{9}, Name: "6", Disclaimer: ",no3,no5"},
		{Intervals: []int{6}, Name: "b5", Disclaimer: ",no3"},
	},
	3: {
		{Intervals: []int{4, 7}, Name: "", Disclaimer: ""},
		{Intervals: []int{3, 7}, Name: "m", Disclaimer: ""},
		{Intervals: []int{5, 7}, Name: "sus4", Disclaimer: ""},
		{Intervals: []int{2, 7}, Name: "sus2", Disclaimer: ""},
		{Intervals: []int{4, 8}, Name: "+", Disclaimer: ""},
		{Intervals: []int{3, 6}, Name: "dim", Disclaimer: ""},
		{Intervals: []int{4, 10}, Name: "7", Disclaimer: ",no5"},
		{Intervals: []int{4, 11}, Name: "maj7", Disclaimer: ",no5"},
		{Intervals: []int{3, 10}, Name: "m7", Disclaimer: ",no5"},
		{Intervals: []int{3, 11}, Name: "m/maj7", Disclaimer: ",no5"},
		{Intervals: []int{7, 10}, Name: "7", Disclaimer: ",no3"},
		{Intervals: []int{7, 11}, Name: "maj7", Disclaimer: ",no3"},
		{Intervals: []int{4, 9}, Name: "6", Disclaimer: ",no5"},
		{Intervals: []int{3, 9}, Name: "m6", Disclaimer: ",no5"},
		{Intervals: []int{5, 10}, Name: "7sus4", Disclaimer: ",no5"},
		{Intervals: []int{2, 4}, Name: "add9", Disclaimer: ",no5", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 3}, Name: "madd9", Disclaimer: ",no5", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 10}, Name: "9", Disclaimer: ",no3,no5", Degrees: map[int]string{2: "9"}},
	},
	4: {
		{Intervals: []int{4, 7, 10}, Name: "7", Disclaimer: ""},
		{Intervals: []int{4, 7, 11}, Name: "maj7", Disclaimer: ""},
		{Intervals: []int{3, 7, 10}, Name: "m7", Disclaimer: ""},
		{Intervals: []int{3, 7, 11}, Name: "m/maj7", Disclaimer: ""},
		{Intervals: []int{3, 6, 9}, Name: "dim7", Disclaimer: ""},
		{Intervals: []int{3, 6, 10}, Name: "m7b5", Disclaimer: ""},
		{Intervals: []int{4, 7, 9}, Name: "6", Disclaimer: ""},
		{Intervals: []int{3, 7, 9}, Name: "m6", Disclaimer: ""},
		{Intervals: []int{4, 8, 10}, Name: "7#5", Disclaimer: ""},
		{Intervals: []int{4, 6, 10}, Name: "7b5", Disclaimer: ""},
		{Intervals: []int{5, 7, 10}, Name: "7sus4", Disclaimer: ""},
		{Intervals: []int{2, 5, 7}, Name: "9sus4", Disclaimer: "", Degrees: map[int]string{2: "9", 5: "4"}},
		{Intervals: []int{2, 4, 7}, Name: "add9", Disclaimer: "", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 3, 7}, Name: "madd9", Disclaimer: "", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 4, 10}, Name: "9", Disclaimer: ",no5", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 3, 10}, Name: "m9", Disclaimer: ",no5", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 4, 11}, Name: "maj9", Disclaimer: ",no5", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{5, 7, 11}, Name: "maj7sus4", Disclaimer: ""},
	},
	5: {
		{Intervals: []int{2, 4, 7, 10}, Name: "9", Disclaimer: "", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 3, 7, 10}, Name: "m9", Disclaimer: "", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{2, 4, 7, 11}, Name: "maj9", Disclaimer: "", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{1, 4, 7, 10}, Name: "7b9", Disclaimer: "", Degrees: map[int]string{1: "b9"}},
		{Intervals: []int{3, 4, 7, 10}, Name: "7#9", Disclaimer: "", Degrees: map[int]string{3: "#9"}},
		{Intervals: []int{2, 5, 7, 10}, Name: "11", Disclaimer: ",no3", Degrees: map[int]string{2: "9", 5: "11"}},
		{Intervals: []int{4, 5, 7, 10}, Name: "11", Disclaimer: ",no9", Degrees: map[int]string{5: "11"}},
		{Intervals: []int{2, 4, 7, 9}, Name: "6/9", Disclaimer: "", Degrees: map[int]string{2: "9"}},
		{Intervals: []int{4, 7, 9, 10}, Name: "13", Disclaimer: ",no9,no11", Degrees: map[int]string{9: "13"}},
		{Intervals: []int{3, 7, 9, 10}, Name: "m13", Disclaimer: ",no9,no11", Degrees: map[int]string{9: "13"}},
	},
	6: {
		{Intervals: []int{2, 4, 5, 7, 10}, Name: "11", Disclaimer: "", Degrees: map[int]string{2: "9", 5: "11"}},
		{Intervals: []int{2, 3, 5, 7, 10}, Name: "m11", Disclaimer: "", Degrees: map[int]string{2: "9", 5: "11"}},
		{Intervals: []int{2, 4, 5, 7, 11}, Name: "maj11", Disclaimer: "", Degrees: map[int]string{2: "9", 5: "11"}},
		{Intervals: []int{2, 4, 7, 9, 10}, Name: "13", Disclaimer: ",no11", Degrees: map[int]string{2: "9", 9: "13"}},
		{Intervals: []int{4, 5, 7, 9, 10}, Name: "13", Disclaimer: ",no9", Degrees: map[int]string{5: "11", 9: "13"}},
	},
}

// noMatchName is the name emitted when no pattern matches.
const noMatchName = "??"
