package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	dump := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/esign/internal/pkg/goroutine.(*Manager).run.func1()
	/src/esign/internal/pkg/goroutine/goroutine.go:71 +0x8d
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:792 +0x132
github.com/shandysiswandi/esign/internal/identity/usecase.(*Usecase).ConfirmLink()
	/src/esign/internal/identity/usecase/link_confirm.go:40 +0x1f
`)

	assert.Equal(t, []string{
		"internal/pkg/goroutine/goroutine.go:71",
		"internal/identity/usecase/link_confirm.go:40",
	}, InternalPaths(dump))
	assert.Empty(t, InternalPaths([]byte("no frames")))
}
