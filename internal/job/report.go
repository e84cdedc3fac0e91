package job

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sigs.k8s.io/yaml"
)

// Report collects the results of a job in file order.
type Report struct {
	Results []Result `json:"results"`
}

// Result is the outcome of one pattern.
type Result struct {
	Name     string `json:"name"`
	Regex    string `json:"regex"`
	Alphabet string `json:"alphabet"`
	States   int    `json:"states,omitempty"`
	// Modulus is 0 for exact counts
	Modulus uint64        `json:"modulus,omitempty"`
	Counts  []LengthCount `json:"counts,omitempty"`
	Matches []TextMatch   `json:"matches,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// LengthCount is the number of accepted strings of one length. Count is a
// decimal string since exact counts do not fit in any fixed-size integer.
type LengthCount struct {
	Length uint64 `json:"length"`
	Count  string `json:"count"`
}

// TextMatch is the outcome of matching one text.
type TextMatch struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
	Error string `json:"error,omitempty"`
}

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Failed reports whether any pattern failed to compile or any text could
// not be matched.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Error != "" {
			return true
		}
		for _, m := range res.Matches {
			if m.Error != "" {
				return true
			}
		}
	}
	return false
}

// Write renders the report to w in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return r.writeText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to render yaml report: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func (r *Report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range r.Results {
		fmt.Fprintf(tw, "pattern %s\t%q over %q\n", res.Name, res.Regex, res.Alphabet)
		if res.Error != "" {
			fmt.Fprintf(tw, "  error\t%s\n", res.Error)
			continue
		}
		fmt.Fprintf(tw, "  states\t%d\n", res.States)
		for _, c := range res.Counts {
			if res.Modulus != 0 {
				fmt.Fprintf(tw, "  count(%d)\t%s (mod %d)\n", c.Length, c.Count, res.Modulus)
			} else {
				fmt.Fprintf(tw, "  count(%d)\t%s\n", c.Length, c.Count)
			}
		}
		for _, m := range res.Matches {
			if m.Error != "" {
				fmt.Fprintf(tw, "  match %q\terror: %s\n", m.Text, m.Error)
			} else {
				fmt.Fprintf(tw, "  match %q\t%v\n", m.Text, m.Match)
			}
		}
	}
	return tw.Flush()
}
