package vm

import "go.uber.org/zap"

// Logger is the structured sink the loader and dispatcher write
// diagnostics to. Nop by default so library consumers of this package
// don't get unsolicited output; cmd/ovm installs a real zap logger.
var Logger *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger installs the logger used for fatal-error and trace output.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		Logger = l
	}
}
