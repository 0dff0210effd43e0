package oaskema

import "regexp"

// String formats understood by the Format check.
const (
	FormatEmail = "email"
	FormatURI   = "uri"
)

// StringCheck is one of MinLength, MaxLength, ExactLength, Format or Pattern.
type StringCheck interface {
	stringCheck()
}

type MinLength struct{ N int }

type MaxLength struct{ N int }

// ExactLength constrains both bounds to N.
type ExactLength struct{ N int }

// Format names a well-known string format (FormatEmail, FormatURI).
type Format struct{ Name string }

type Pattern struct{ Regexp *regexp.Regexp }

// Source returns the regular expression text, or "" for a nil pattern.
func (p Pattern) Source() string {
	if p.Regexp == nil {
		return ""
	}
	return p.Regexp.String()
}

func (MinLength) stringCheck()   {}
func (MaxLength) stringCheck()   {}
func (ExactLength) stringCheck() {}
func (Format) stringCheck()      {}
func (Pattern) stringCheck()     {}

// NumberCheck is one of Min or Max.
type NumberCheck interface {
	numberCheck()
}

// Min is a lower bound; Exclusive turns >= into >.
type Min struct {
	Value     float64
	Exclusive bool
}

// Max is an upper bound; Exclusive turns <= into <.
type Max struct {
	Value     float64
	Exclusive bool
}

func (Min) numberCheck() {}
func (Max) numberCheck() {}

// ArrayCheck is one of MinItems or MaxItems.
type ArrayCheck interface {
	arrayCheck()
}

type MinItems struct{ N int }

type MaxItems struct{ N int }

func (MinItems) arrayCheck() {}
func (MaxItems) arrayCheck() {}
