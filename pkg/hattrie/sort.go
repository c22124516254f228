package hattrie

import "bytes"

// insertionCutoff is the entry count at or below which quicksortResidues
// falls back to a plain insertion sort.
const insertionCutoff = 10

// quicksortResidues sorts e by residue using a three-way (Dutch national
// flag) radix-partition quicksort keyed byte-by-byte starting at offset.
// Length-prefix bytes are never part of the comparison: byteAt reads
// straight from the decoded residue, which callers have already stripped
// of its encoding.
func quicksortResidues(e []entry, offset int) {
	for len(e) > insertionCutoff {
		pivot := byteAt(e[0].residue, offset)
		lt, gt, i := 0, len(e)-1, 1

		for i <= gt {
			switch c := byteAt(e[i].residue, offset); {
			case c < pivot:
				e[lt], e[i] = e[i], e[lt]
				lt++
				i++
			case c > pivot:
				e[i], e[gt] = e[gt], e[i]
				gt--
			default:
				i++
			}
		}

		quicksortResidues(e[:lt], offset)
		if pivot >= 0 {
			quicksortResidues(e[lt:gt+1], offset+1)
		}

		e = e[gt+1:]
	}

	insertionSortResidues(e)
}

func insertionSortResidues(e []entry) {
	for i := 1; i < len(e); i++ {
		for j := i; j > 0 && bytes.Compare(e[j].residue, e[j-1].residue) < 0; j-- {
			e[j], e[j-1] = e[j-1], e[j]
		}
	}
}

// byteAt returns the byte of s at i, or -1 past its end so that a shorter
// residue always sorts before a longer one sharing its prefix.
func byteAt(s []byte, i int) int {
	if i >= len(s) {
		return -1
	}
	return int(s[i])
}
