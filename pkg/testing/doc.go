// Package testing provides a widget testing framework for folio documents.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestTheorem(t *testing.T) {
//	    tester := foliotest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(widgets.Theorem{Title: "Lemma"})
//
//	    if !tester.Find(foliotest.ByText("Lemma")).Exists() {
//	        t.Error("expected title text")
//	    }
//
//	    doc := tester.Document(t)
//	    if doc.Find(".folio-theorem-title").Length() != 1 {
//	        t.Error("expected one title region")
//	    }
//	}
//
// Document parses the rendered host nodes with goquery, so assertions can
// use CSS selectors against exactly what the display layer would serve.
//
// # Snapshot Testing
//
// Capture and compare element tree and markup snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/theorem.snapshot.json")
//
// Update snapshots with:
//
//	FOLIO_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import foliotest "github.com/go-drift/folio/pkg/testing"
package testing
