package marks

import (
	"testing"

	"github.com/dshills/markpeek/internal/dispatch/execctx"
	"github.com/dshills/markpeek/internal/dispatch/handler"
	"github.com/dshills/markpeek/internal/editor"
	"github.com/dshills/markpeek/internal/input"
)

type fakeSession struct {
	triggered []rune
	declines  bool
}

func (f *fakeSession) Trigger(prefix rune, buffer string) bool {
	f.triggered = append(f.triggered, prefix)
	return !f.declines
}

func testContext(content string) (*execctx.ExecutionContext, *editor.Window) {
	b := editor.NewBuffer("", []byte(content))
	w := editor.NewWindow(b)
	ctx := execctx.New().WithBuffer(b).WithCursor(w)
	ctx.BufferName = b.Name
	return ctx, w
}

func TestSetAndJumpExact(t *testing.T) {
	h := NewHandler()
	ctx, w := testContext("one\ntwo two\nthree\n")

	w.MoveTo(editor.Position{Line: 2, Col: 5})
	if res := h.HandleAction(input.NewAction(ActionSet).WithChar('a'), ctx); !res.IsOK() {
		t.Fatalf("mark.set failed: %v", res.Error)
	}

	w.MoveTo(editor.Position{Line: 1, Col: 1})
	action := input.NewAction(ActionJump).WithChar('a')
	action.Args.Exact = true
	if res := h.HandleAction(action, ctx); !res.IsOK() {
		t.Fatalf("mark.jump failed: %v", res.Error)
	}
	if got := w.Position(); got.Line != 2 || got.Col != 5 {
		t.Errorf("position = %+v after exact jump, want line 2 col 5", got)
	}
}

func TestJumpLineStyle(t *testing.T) {
	h := NewHandler()
	ctx, w := testContext("one\n   two\nthree\n")

	w.MoveTo(editor.Position{Line: 2, Col: 6})
	h.HandleAction(input.NewAction(ActionSet).WithChar('b'), ctx)

	w.MoveTo(editor.Position{Line: 3, Col: 1})
	if res := h.HandleAction(input.NewAction(ActionJump).WithChar('b'), ctx); !res.IsOK() {
		t.Fatalf("mark.jump failed: %v", res.Error)
	}
	if got := w.Position(); got.Line != 2 || got.Col != 4 {
		t.Errorf("position = %+v after line jump, want line 2 col 4", got)
	}
}

func TestJumpUnknownMarkIsNoOp(t *testing.T) {
	h := NewHandler()
	ctx, w := testContext("one\ntwo\n")

	before := w.Position()
	res := h.HandleAction(input.NewAction(ActionJump).WithChar('z'), ctx)
	if res.Status != handler.StatusNoOp {
		t.Errorf("status = %v for unknown mark, want no-op", res.Status)
	}
	if got := w.Position(); got != before {
		t.Errorf("cursor moved on unknown mark: %+v", got)
	}
}

func TestJumpRecordsPreviousPosition(t *testing.T) {
	h := NewHandler()
	ctx, w := testContext("one\ntwo\nthree\n")
	b := ctx.Buffer

	w.MoveTo(editor.Position{Line: 3, Col: 2})
	h.HandleAction(input.NewAction(ActionSet).WithChar('a'), ctx)

	w.MoveTo(editor.Position{Line: 1, Col: 2})
	h.HandleAction(input.NewAction(ActionJump).WithChar('a'), ctx)

	prev, ok := b.Mark(PrevMark)
	if !ok {
		t.Fatal("previous-position mark not recorded")
	}
	if prev.Line != 1 || prev.Col != 2 {
		t.Errorf("previous mark = %+v, want line 1 col 2", prev)
	}
}

func TestPreviewTriggersSession(t *testing.T) {
	h := NewHandler()
	ctx, _ := testContext("one\n")
	sess := &fakeSession{}
	ctx.Session = sess

	res := h.HandleAction(input.NewAction(ActionPreview).WithChar('`'), ctx)
	if !res.IsOK() {
		t.Fatalf("mark.preview failed: %v", res.Error)
	}
	if len(sess.triggered) != 1 || sess.triggered[0] != '`' {
		t.Errorf("session triggered with %q", sess.triggered)
	}
}

func TestPreviewDeclinedIsCancelled(t *testing.T) {
	h := NewHandler()
	ctx, _ := testContext("one\n")
	ctx.Session = &fakeSession{declines: true}

	res := h.HandleAction(input.NewAction(ActionPreview).WithChar('\''), ctx)
	if res.Status != handler.StatusCancelled {
		t.Errorf("status = %v for declined preview, want cancelled", res.Status)
	}
	if res.Error != nil {
		t.Errorf("declined preview surfaced error %v", res.Error)
	}
}

func TestPreviewWithoutSession(t *testing.T) {
	h := NewHandler()
	ctx, _ := testContext("one\n")

	res := h.HandleAction(input.NewAction(ActionPreview).WithChar('\''), ctx)
	if !res.IsError() {
		t.Error("preview without session did not error")
	}
}
