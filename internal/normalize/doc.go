// Package normalize turns result files into whitespace-free strings so that
// outputs written with different line wrapping or spacing can be compared
// character by character.
//
// Every rune for which unicode.IsSpace reports true is removed and the
// remaining runes are kept in their original order. Token boundaries are not
// preserved: "12 3" and "1 23" both normalize to "123".
package normalize
