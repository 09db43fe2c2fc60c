package report

import "testing"

func TestDiagnosticConstructors(t *testing.T) {
	span := &TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 9}

	d := Unresolvedf(span, "undefined variable: `%s`", "x")
	if d.Kind != DiagUnresolved {
		t.Errorf("kind = %d, want unresolved", d.Kind)
	}
	if d.Error() != "undefined variable: `x`" {
		t.Errorf("message = %q", d.Error())
	}
	if d.Span != span {
		t.Error("span not carried through")
	}

	u := Unsupportedf(nil, "match statements are not yet supported")
	if u.Kind != DiagUnsupported || u.Span != nil {
		t.Errorf("unsupported diagnostic = %+v", u)
	}
}

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 3, EndLine: 1, EndCol: 5}
	end := &TextSpan{StartLine: 4, StartCol: 0, EndLine: 4, EndCol: 8}

	over := NewSpanOver(start, end)
	if over.StartLine != 1 || over.StartCol != 3 || over.EndLine != 4 || over.EndCol != 8 {
		t.Errorf("span = %+v", over)
	}
}
