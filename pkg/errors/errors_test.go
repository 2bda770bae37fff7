package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestFolioErrorString(t *testing.T) {
	err := &FolioError{
		Op:   "widgets.Image",
		Kind: KindAsset,
		Err:  stderrors.New("file does not exist"),
	}
	want := "widgets.Image [asset]: file does not exist"
	if got := err.Error(); got != want {
		t.Errorf("FolioError.Error() = %q, want %q", got, want)
	}
}

func TestFolioErrorWithRef(t *testing.T) {
	err := &FolioError{
		Op:   "widgets.Image",
		Kind: KindAsset,
		Ref:  "ito-plot.png",
		Err:  stderrors.New("missing"),
	}
	if got := err.Error(); !strings.Contains(got, "ref=ito-plot.png") {
		t.Errorf("error string %q should contain ref", got)
	}
}

func TestFolioErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := &FolioError{Op: "op", Kind: KindMath, Err: sentinel}
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see through FolioError")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindBuild, "build"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindAsset, "asset"},
		{KindMath, "math"},
		{KindConfig, "config"},
		{KindFigure, "figure"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "server.handleArticle"
	if got, want := err.Error(), "panic in server.handleArticle: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestBuildErrorString(t *testing.T) {
	err := &BuildError{
		Widget:    "ito.Article",
		Element:   "*core.StatelessElement",
		Recovered: "nil pointer dereference",
	}
	if got, want := err.Error(), "panic in ito.Article.Build(): nil pointer dereference"; got != want {
		t.Errorf("BuildError.Error() = %q, want %q", got, want)
	}

	err = &BuildError{Widget: "ito.Article", Err: stderrors.New("bad")}
	if got := err.Error(); !strings.HasPrefix(got, "error in ito.Article.Build()") {
		t.Errorf("BuildError.Error() = %q, should start with 'error in'", got)
	}

	err = &BuildError{Widget: "ito.Article"}
	if got, want := err.Error(), "unknown error in ito.Article.Build()"; got != want {
		t.Errorf("BuildError.Error() = %q, want %q", got, want)
	}
}

func TestReportSetsTimestamp(t *testing.T) {
	collector := &Collector{}
	prev := SetHandler(collector)
	defer SetHandler(prev)

	Report(&FolioError{Op: "test.op", Kind: KindConfig, Err: stderrors.New("x")})

	errs := collector.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	var fe *FolioError
	if !stderrors.As(errs[0], &fe) {
		t.Fatalf("expected *FolioError, got %T", errs[0])
	}
	if fe.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNilIsIgnored(t *testing.T) {
	collector := &Collector{}
	prev := SetHandler(collector)
	defer SetHandler(prev)

	Report(nil)
	ReportPanic(nil)
	ReportBuildError(nil)

	if n := len(collector.Errors()); n != 0 {
		t.Errorf("expected no errors, got %d", n)
	}
}

func TestRecover(t *testing.T) {
	collector := &Collector{}
	prev := SetHandler(collector)
	defer SetHandler(prev)

	var callbackValue any
	func() {
		defer RecoverWithCallback("test.recover", func(r any) { callbackValue = r })
		panic("intentional test panic")
	}()

	errs := collector.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 recorded panic, got %d", len(errs))
	}
	pe, ok := errs[0].(*PanicError)
	if !ok {
		t.Fatalf("expected *PanicError, got %T", errs[0])
	}
	if pe.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", pe.Op, "test.recover")
	}
	if callbackValue != "intentional test panic" {
		t.Errorf("callback got %v", callbackValue)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)

	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install LogHandler, got %T", Handler())
	}
}

func TestLogHandlerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	h := NewLogHandler(logger)
	h.HandleError(&FolioError{Op: "widgets.Image", Kind: KindAsset, Ref: "ito-plot.png", Err: stderrors.New("missing")})
	h.HandleBuildError(&BuildError{Widget: "ito.Article", Element: "*core.StatelessElement", Recovered: "boom"})
	h.HandlePanic(&PanicError{Op: "server", Value: "boom"})

	out := buf.String()
	for _, want := range []string{
		"level=warning",
		"kind=asset",
		"ref=ito-plot.png",
		"widget=ito.Article",
		"level=error",
		"recovered panic: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestCollectorReset(t *testing.T) {
	c := &Collector{}
	c.HandleError(&FolioError{Op: "a"})
	c.HandlePanic(&PanicError{Value: 1})
	if n := len(c.Errors()); n != 2 {
		t.Fatalf("expected 2 errors, got %d", n)
	}
	c.Reset()
	if n := len(c.Errors()); n != 0 {
		t.Errorf("expected 0 errors after Reset, got %d", n)
	}
}
