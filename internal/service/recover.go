package service

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"webrecon/internal/log"
	"webrecon/internal/model"
)

// recoverCollector turns a panic inside a collector into a failed status so
// the remaining collectors and the report are unaffected.
func recoverCollector(name string, status *model.CollectorStatus) {
	if err := recover(); err != nil {
		log.Logger.Error("panic recovered",
			zap.String("collector", name),
			zap.Any("error", err),
			zap.ByteString("stack", debug.Stack()),
		)
		*status = model.Failed(fmt.Sprintf("internal error: %v", err), 0)
	}
}
