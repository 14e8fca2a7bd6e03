package xray

// Level grades a status line.
type Level string

const (
	// LevelInfo marks progress messages.
	LevelInfo Level = "info"
	// LevelSuccess marks completed stages and final counts.
	LevelSuccess Level = "success"
	// LevelError marks failures and warnings.
	LevelError Level = "error"
)

// Reporter receives human readable status lines. It is purely observational.
type Reporter interface {
	Emit(level Level, message string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(level Level, message string)

// Emit calls f.
func (f ReporterFunc) Emit(level Level, message string) {
	f(level, message)
}

// Discard drops every status line.
var Discard Reporter = ReporterFunc(func(Level, string) {})
