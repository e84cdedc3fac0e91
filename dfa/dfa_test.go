package dfa

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/tinydfa/ring"
)

func TestDeterminizeTotal(t *testing.T) {
	patterns := []string{"", "A", ".*A.*", "(AA?B)*", "A*B*|CC", "((A|B)C?)*", "(A|BC|)(C|)+"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			d := mustBuild(t, p, "ABC")
			for s := 0; s < d.States(); s++ {
				for sym := 0; sym < d.Alphabet().Len(); sym++ {
					next := d.Next(StateID(s), sym)
					if int(next) >= d.States() {
						t.Errorf("Next(%d, %d) = %d, out of %d states", s, sym, next, d.States())
					}
				}
			}
		})
	}
}

func TestDeterminizeStates(t *testing.T) {
	tests := []struct {
		pattern  string
		alphabet string
		states   int
	}{
		{pattern: "", alphabet: "AB", states: 2},
		{pattern: ".*A.*", alphabet: "AB", states: 5},
		{pattern: "(BB?)?(AA?BB?)*AAA+(BB?A+)*(BB?)?", alphabet: "AB", states: 12},
		{pattern: "", alphabet: "", states: 1},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.alphabet, func(t *testing.T) {
			d := mustBuild(t, tt.pattern, tt.alphabet)
			if d.States() != tt.states {
				t.Errorf("States() = %d, want %d", d.States(), tt.states)
			}
		})
	}
}

func TestDeterminizeIsDeterministic(t *testing.T) {
	const pattern = "(BB?)?(AA?BB?)*AAA+(BB?A+)*(BB?)?"
	a := mustBuild(t, pattern, "AB")
	b := mustBuild(t, pattern, "AB")
	if a.States() != b.States() {
		t.Fatalf("state counts differ: %d vs %d", a.States(), b.States())
	}
	for s := 0; s < a.States(); s++ {
		if a.IsMatch(StateID(s)) != b.IsMatch(StateID(s)) {
			t.Errorf("state %d acceptance differs", s)
		}
		for sym := 0; sym < 2; sym++ {
			if a.Next(StateID(s), sym) != b.Next(StateID(s), sym) {
				t.Errorf("Next(%d, %d) differs", s, sym)
			}
		}
	}
}

func TestDeterminizeStateLimit(t *testing.T) {
	_, err := build(".*A....", "AB", DefaultConfig().WithMaxStates(8))
	if !errors.Is(err, ErrStateLimitExceeded) {
		t.Fatalf("error = %v, want ErrStateLimitExceeded", err)
	}

	// 2^5 configurations plus the start state fit exactly
	if _, err := build(".*A....", "AB", DefaultConfig().WithMaxStates(33)); err != nil {
		t.Fatalf("unexpected error with sufficient limit: %v", err)
	}
}

func TestDeterminizeInvalidConfig(t *testing.T) {
	_, err := build("A", "A", Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		text     string
		pattern  string
		alphabet string
		want     bool
	}{
		{text: "AABAAB", pattern: ".*A.*", alphabet: "ABC", want: true},
		{text: "AABAAB", pattern: "(.A*.)*", alphabet: "ABC", want: true},
		{text: "AABAAB", pattern: "AAB", alphabet: "ABC", want: false},
		{text: "AABAAB", pattern: ".*AAA.*", alphabet: "ABC", want: false},
		{text: "", pattern: "", alphabet: "AB", want: true},
		{text: "", pattern: "A*", alphabet: "AB", want: true},
		{text: "", pattern: "A+", alphabet: "AB", want: false},
		{text: "A", pattern: "", alphabet: "AB", want: false},
		{text: "CC", pattern: "A*B*|CC", alphabet: "ABC", want: true},
		{text: "ACC", pattern: "A*B*|CC", alphabet: "ABC", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			d := mustBuild(t, tt.pattern, tt.alphabet)
			got, err := d.Match(tt.text)
			if err != nil {
				t.Fatalf("Match(%q) error = %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatchInvalidInput(t *testing.T) {
	d := mustBuild(t, ".*", "AB")
	ok, err := d.Match("ABXA")
	if ok {
		t.Error("Match should not succeed on invalid input")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "offset 2") {
		t.Errorf("error %q should name the offending offset", err)
	}
}

// TestMatchAgainstStdlib compares whole-string acceptance with the standard
// library's regexp, which accepts this pattern language unchanged.
func TestMatchAgainstStdlib(t *testing.T) {
	patterns := []string{
		"A*", "(A|B)*", "A|B*", "(A)*|B", "(A*|B)C", "(A|B)+A|B", "((A|B)C?)*",
		"A?B+(AB|BA)*", "(|A)", "A|", "(A*)*B", ".?.?A", "(A|BC|)(C|)+", "((A)|(B))?C*",
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			d := mustBuild(t, p, "ABC")
			re := regexp.MustCompile("^(?:" + p + ")$")
			for n := 0; n <= 5; n++ {
				allStrings("ABC", n, func(s string) {
					got, err := d.Match(s)
					if err != nil {
						t.Fatalf("Match(%q) error = %v", s, err)
					}
					if want := re.MatchString(s); got != want {
						t.Errorf("Match(%q) = %v, want %v", s, got, want)
					}
				})
			}
		})
	}
}

func TestConcurrentUse(t *testing.T) {
	d := mustBuild(t, "(BB?)?(AA?BB?)*AAA+(BB?A+)*(BB?)?", "AB")
	r := ring.MustMod(testModulus)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if ok, err := d.Match("AAABBAAA"); err != nil || !ok {
					errs <- "Match(AAABBAAA) failed"
					return
				}
				if got := Count[uint64](d, r, 11)[10]; got != 326 {
					errs <- "Count mismatch"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func TestString(t *testing.T) {
	d := mustBuild(t, ".*A.*", "AB")
	want := `DFA{states: 5, matchStates: 3, alphabet: "AB"}`
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
