package report

import "fmt"

// IssueHelp is the stable pointer attached to every unsatisfied-bound
// diagnostic.
const IssueHelp = "see issue #48214 <https://github.com/rust-lang/rust/issues/48214>"

// maxImplementers caps the implementer list; the rest collapse into
// "and N others".
const maxImplementers = 8

func code(s string) string {
	return "`" + s + "`"
}

// trait renders Trait<Arg>.
func trait(name, arg string) string {
	return fmt.Sprintf("%s<%s>", name, arg)
}

// bound renders `Self: Trait<Arg>`.
func bound(self, name, arg string) string {
	return code(self + ": " + trait(name, arg))
}
