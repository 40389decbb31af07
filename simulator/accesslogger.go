package simulator

import (
	"log"

	"github.com/sarchlab/csim/hooking"
)

// An AccessLogger is a hook that prints one line per replacement decision,
// in the order the decisions were made.
type AccessLogger struct {
	hooking.LogHookBase
}

// NewAccessLogger returns an AccessLogger that writes into the logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	h := new(AccessLogger)
	h.Logger = logger
	return h
}

// Func writes the access information into the logger
func (h *AccessLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosAccessComplete {
		return
	}

	record, ok := ctx.Item.(AccessRecord)
	if !ok {
		return
	}

	h.Logger.Printf("%s %x %s",
		record.Kind, record.Address, record.Result)
}
