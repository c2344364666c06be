package i

// Logger is the component logger used by services and infrastructure.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
