package logging

import (
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", DEBUG, false},
		{"DEBUG", DEBUG, false},
		{"info", INFO, false},
		{"Warn", WARN, false},
		{"error", ERROR, false},
		{"fatal", FATAL, false},
		{"verbose", -1, true},
		{"", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseLevel(%q) expected error, got level %d", tt.input, level)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLevel(%q) unexpected error: %v", tt.input, err)
			}
			if level != tt.expected {
				t.Errorf("parseLevel(%q) = %d, want %d", tt.input, level, tt.expected)
			}
		})
	}
}

func TestInitializeRejectsInvalidLevel(t *testing.T) {
	if err := Initialize("loud"); err == nil {
		t.Error("Initialize with invalid level should return an error")
	}
}

func TestWithFieldReturnsNewLogger(t *testing.T) {
	base := GetLogger("test")
	child := base.WithField("run_id", "abc")

	if base == child {
		t.Fatal("WithField should return a new logger instance")
	}
	if len(base.fields) != 0 {
		t.Errorf("parent logger fields mutated: %v", base.fields)
	}
	if child.fields["run_id"] != "abc" {
		t.Errorf("child logger missing field, got %v", child.fields)
	}
}

func TestWithFieldsMerges(t *testing.T) {
	logger := GetLogger("test").
		WithField("a", 1).
		WithFields(Field("b", 2), Field("a", 3))

	if logger.fields["a"] != 3 {
		t.Errorf("later field should win, got a=%v", logger.fields["a"])
	}
	if logger.fields["b"] != 2 {
		t.Errorf("missing merged field b, got %v", logger.fields)
	}
}

func TestShouldLogRespectsLevel(t *testing.T) {
	logger := &Logger{level: WARN, name: "test"}

	if logger.shouldLog(DEBUG) {
		t.Error("DEBUG should be suppressed at WARN level")
	}
	if logger.shouldLog(INFO) {
		t.Error("INFO should be suppressed at WARN level")
	}
	if !logger.shouldLog(WARN) {
		t.Error("WARN should be logged at WARN level")
	}
	if !logger.shouldLog(ERROR) {
		t.Error("ERROR should be logged at WARN level")
	}
}
