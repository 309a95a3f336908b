package collector

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ http.ResponseWriter = (*Response)(nil)
	_ http.Flusher        = (*Response)(nil)
)

func TestResponseTwoPhaseWrite(t *testing.T) {
	r := New()
	assert.Equal(t, StatePending, r.State())

	r.Header().Set("Content-Type", "text/plain")
	r.WriteHeader(http.StatusAccepted)
	assert.Equal(t, StatePending, r.State())

	n, err := r.Write([]byte("hello, "))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, StateWriting, r.State())

	_, err = r.Write([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, StateWriting, r.State())

	r.End()
	r.End()
	assert.Equal(t, StateCompleted, r.State())

	select {
	case <-r.Done():
	default:
		t.Fatal("Done was not closed")
	}

	res := r.Result()
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, "text/plain", res.Headers.Get("Content-Type"))
	assert.Equal(t, "hello, world", string(res.Body))
}

func TestResponseDefaultStatus(t *testing.T) {
	r := New()
	r.End()

	res := r.Result()
	assert.Equal(t, DefaultStatusCode, res.StatusCode)
	assert.Empty(t, res.Body)
	assert.NotNil(t, res.Headers)
}

func TestResponseImplicitStatusOnWrite(t *testing.T) {
	r := New()
	_, err := r.Write([]byte("<html><body>hi</body></html>"))
	require.NoError(t, err)
	r.End()

	res := r.Result()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", res.Headers.Get("Content-Type"))
}

func TestResponseStatusIsWriteOnce(t *testing.T) {
	r := New()
	r.WriteHeader(http.StatusContinue)
	assert.False(t, r.Written())

	r.WriteHeader(http.StatusCreated)
	r.WriteHeader(http.StatusInternalServerError)
	r.End()

	assert.Equal(t, http.StatusCreated, r.Result().StatusCode)
}

func TestResponseHeadersSnapshotAtWriteHeader(t *testing.T) {
	r := New()
	r.Header().Set("X-Before", "1")
	r.WriteHeader(http.StatusOK)
	r.Header().Set("X-After", "2")
	r.End()

	res := r.Result()
	assert.Equal(t, "1", res.Headers.Get("X-Before"))
	assert.Empty(t, res.Headers.Get("X-After"))
}

func TestResponseHeaderLastWriteWins(t *testing.T) {
	r := New()
	r.Header().Set("X-Version", "1")
	r.Header().Set("X-Version", "2")
	r.Header().Add("Set-Cookie", "a=1")
	r.Header().Add("Set-Cookie", "b=2")
	r.End()

	res := r.Result()
	assert.Equal(t, []string{"2"}, res.Headers.Values("X-Version"))
	assert.Equal(t, []string{"a=1", "b=2"}, res.Headers.Values("Set-Cookie"))
}

func TestResponseWriteAfterEnd(t *testing.T) {
	r := New()
	_, _ = r.Write([]byte("a"))
	r.End()

	n, err := r.Write([]byte("b"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrResponseCompleted)
	assert.Equal(t, "a", string(r.Result().Body))

	r.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusOK, r.Result().StatusCode)
}

func TestResponseEmptyWriteKeepsState(t *testing.T) {
	r := New()
	_, err := r.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, StatePending, r.State())
	assert.True(t, r.Written())
}

func TestResponseWriterBufferIsCopied(t *testing.T) {
	r := New()
	buf := []byte("abc")
	_, _ = r.Write(buf)
	buf[0] = 'x'
	_, _ = r.Write(buf)
	r.End()

	assert.Equal(t, "abcxbc", string(r.Result().Body))
}

func TestResponseWaitFromAnotherGoroutine(t *testing.T) {
	r := New()

	go func() {
		r.WriteHeader(http.StatusCreated)
		for i := 0; i < 3; i++ {
			fmt.Fprintf(r, "%d", i)
		}
		r.End()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "012", string(res.Body))
}

func TestResponseWaitHonoursContext(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Wait(ctx)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatePending, r.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "writing", StateWriting.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "unknown", State(7).String())
}
