package simulator

import (
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/hooking"
)

const accessTableName = "access_trace"

// accessEntry is the row format of the access_trace table.
type accessEntry struct {
	Seq     uint64
	Kind    string
	Address uint64
	SetID   int
	Tag     uint64
	Result  string
}

// An AccessRecorder is a hook that stores every replacement decision into a
// data recording backend.
type AccessRecorder struct {
	recorder datarecording.DataRecorder
}

// NewAccessRecorder creates an AccessRecorder writing into recorder. It
// creates the access_trace table immediately.
func NewAccessRecorder(recorder datarecording.DataRecorder) *AccessRecorder {
	r := &AccessRecorder{recorder: recorder}
	r.recorder.CreateTable(accessTableName, accessEntry{})

	return r
}

// Func records the replacement decision carried by the hook context.
func (r *AccessRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosAccessComplete {
		return
	}

	record, ok := ctx.Item.(AccessRecord)
	if !ok {
		return
	}

	r.recorder.InsertData(accessTableName, accessEntry{
		Seq:     record.Seq,
		Kind:    record.Kind.String(),
		Address: record.Address,
		SetID:   record.SetID,
		Tag:     record.Tag,
		Result:  record.Result.String(),
	})
}
