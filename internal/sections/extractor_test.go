package sections

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract_StrictMarkers(t *testing.T) {
	source := "🔧 **Technical Answer**\n" +
		"Use a connection pool sized to your core count.\n\n" +
		"💡 **Mentoring Insight**\n" +
		"Benchmarks beat intuition.\n"

	got := Extract(source)
	if got.Technical != "Use a connection pool sized to your core count." {
		t.Fatalf("Technical = %q", got.Technical)
	}
	if got.Mentoring != "Benchmarks beat intuition." {
		t.Fatalf("Mentoring = %q", got.Mentoring)
	}
	if got.NextSteps != "" {
		t.Fatalf("NextSteps = %q, want absent", got.NextSteps)
	}
}

// Both sections must come back from the same source text: the scan is
// independent per section, never an if/else-if chain.
func TestExtract_SectionsAreNonExclusive(t *testing.T) {
	source := "🔧 **Technical Answer**\nAnswer body.\n💡 **Mentoring Insight**\nInsight body."

	got := Extract(source)
	if got.Technical == "" || got.Mentoring == "" {
		t.Fatalf("expected both sections non-empty, got technical=%q mentoring=%q",
			got.Technical, got.Mentoring)
	}
}

func TestExtract_RelaxedFallback(t *testing.T) {
	// Marker and name appear mid-line, so the strict pattern misses.
	source := "Here you go: 🔧 see the **Technical Answer**: keep indexes narrow."

	got := Extract(source)
	if got.Technical != "keep indexes narrow." {
		t.Fatalf("Technical = %q, want relaxed match", got.Technical)
	}
}

func TestExtract_BareFallback(t *testing.T) {
	// No emoji at all; only the bolded name survives in the text.
	source := "**Mentoring Insight**\nShip smaller changes."

	got := Extract(source)
	if got.Mentoring != "Ship smaller changes." {
		t.Fatalf("Mentoring = %q, want bare match", got.Mentoring)
	}
}

func TestExtract_AbsentSectionIsNotAnError(t *testing.T) {
	got := Extract("Nothing marked in here at all.")
	if !got.Empty() {
		t.Fatalf("Extract() = %+v, want all sections empty", got)
	}
	if got.Additional != "Nothing marked in here at all." {
		t.Fatalf("Additional = %q, want full source preserved", got.Additional)
	}
}

func TestExtract_NextStepsNumberedList(t *testing.T) {
	source := "🚀 **Next Steps**\n1. Do X\n2. Do Y"

	got := Extract(source)
	if diff := cmp.Diff([]string{"Do X", "Do Y"}, got.Steps); diff != "" {
		t.Fatalf("Steps mismatch (-want +got):\n%s", diff)
	}
	// Raw text is kept alongside the extraction for fallback rendering.
	if !strings.Contains(got.NextSteps, "1. Do X") {
		t.Fatalf("NextSteps = %q, want raw list text retained", got.NextSteps)
	}
}

func TestExtractSteps_MultiLineSteps(t *testing.T) {
	steps := ExtractSteps("1. Profile the endpoint\nwith production traffic\n2. Add the index")
	want := []string{"Profile the endpoint\nwith production traffic", "Add the index"}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSteps_NoNumbers(t *testing.T) {
	if steps := ExtractSteps("just prose, no list"); steps != nil {
		t.Fatalf("ExtractSteps() = %v, want nil", steps)
	}
}

func TestExtract_AdditionalBucketPreservesLeftover(t *testing.T) {
	source := "Preamble the model added on its own.\n\n" +
		"🔧 **Technical Answer**\nUse sharding.\n"

	got := Extract(source)
	if got.Technical != "Use sharding." {
		t.Fatalf("Technical = %q", got.Technical)
	}
	if got.Additional != "Preamble the model added on its own." {
		t.Fatalf("Additional = %q, want preamble preserved verbatim", got.Additional)
	}
}

func TestExtract_AllThreeSections(t *testing.T) {
	source := "🔧 **Technical Answer**\nBody A.\n" +
		"💡 **Mentoring Insight**\nBody B.\n" +
		"🚀 **Next Steps**\n1. First\n2. Second\n"

	got := Extract(source)
	if got.Technical != "Body A." || got.Mentoring != "Body B." {
		t.Fatalf("sections = %+v", got)
	}
	if len(got.Steps) != 2 || got.Steps[0] != "First" || got.Steps[1] != "Second" {
		t.Fatalf("Steps = %v", got.Steps)
	}
	if got.Additional != "" {
		t.Fatalf("Additional = %q, want empty", got.Additional)
	}
}

func TestExtract_HeadingPrefixedMarker(t *testing.T) {
	source := "### 🔧 **Technical Answer**\nIndented under a heading."

	got := Extract(source)
	if got.Technical != "Indented under a heading." {
		t.Fatalf("Technical = %q", got.Technical)
	}
}
