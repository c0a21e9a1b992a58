package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/YuminosukeSato/vinum/pkg/errors"
)

func TestInitWarnLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	InitWarnLoggerTo(&buf)
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewConvergenceWarning("LogisticRegression", 50, ""))

	out := buf.String()
	if !strings.Contains(out, "LogisticRegression") {
		t.Errorf("warning output missing algorithm name: %q", out)
	}
	if !strings.Contains(out, "50") {
		t.Errorf("warning output missing iteration count: %q", out)
	}
}
