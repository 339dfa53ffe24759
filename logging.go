package level

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger sets the logger used while loading levels. Passing nil turns
// logging off again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
