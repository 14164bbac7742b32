package logger

// NullLogger discards everything. Tests and tools that have nowhere to log use it.
type NullLogger struct{}

var _ Logger = (*NullLogger)(nil)

func NewNullLogger() *NullLogger { return &NullLogger{} }

func (*NullLogger) Info(string, map[string]interface{})  {}
func (*NullLogger) Debug(string, map[string]interface{}) {}
func (*NullLogger) Error(error, map[string]interface{})  {}
func (*NullLogger) Fatal(error, map[string]interface{})  {}
func (*NullLogger) SetLevel(Level)                       {}
