package filter

import (
	"testing"
)

func FuzzNewWhereFilter(f *testing.F) {
	f.Add(`level=error`)
	f.Add(`(level=ERROR OR level=WARN) AND message~/timeout|refused/i`)
	f.Add(`event.json.status>=500 && fault^call.`)
	f.Add(`!message~"hello"`)
	f.Add(`unterminated"`)

	f.Fuzz(func(t *testing.T, expr string) {
		wf, err := NewWhereFilter([]string{expr})
		if err != nil {
			return
		}
		if wf != nil {
			_ = wf.Match(timeoutEvent)
		}
	})
}
