package adapters

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordingClientAdapter_RecordsInOrder(t *testing.T) {
	r := NewRecordingClientAdapter()

	r.SetIdentifier("email", "a@b")
	r.SetProfileAttribute("email", "a@b", ProfileScopeApplication)
	r.DismissCurrentInAppMessage()

	assert.Equal(t, []Call{
		{Method: MethodSetIdentifier, Args: []any{"email", "a@b"}},
		{Method: MethodSetProfileAttribute, Args: []any{"email", "a@b", ProfileScopeApplication}},
		{Method: MethodDismissCurrentInAppMessage, Args: nil},
	}, r.Calls())
	assert.Equal(t, 1, r.Count(MethodSetIdentifier))
	assert.Len(t, r.CallsTo(MethodUpload), 0)

	r.Reset()
	assert.Empty(t, r.Calls())
}

func TestRecordingClientAdapter_Concurrent(t *testing.T) {
	r := NewRecordingClientAdapter()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Upload()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Count(MethodUpload))
}
